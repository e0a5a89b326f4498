package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
)

// Reconciler applies processor events to invoice rows. Events may arrive
// repeatedly and out of order for the same invoice, so every write is an
// idempotent status assignment; nothing is counted or accumulated per event.
type Reconciler struct {
	uow    db.UnitOfWork
	logger *slog.Logger
}

func NewReconciler(uow db.UnitOfWork, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{uow: uow, logger: logger}
}

// Apply dispatches one verified event. Unknown event types are ignored.
func (r *Reconciler) Apply(ctx context.Context, event Event) error {
	switch event.Type {
	case EventCheckoutCompleted:
		return r.completeCheckout(ctx, event)
	case EventPaymentSucceeded, EventInvoicePaid:
		return r.setStatus(ctx, event, domain.InvoicePaid)
	case EventPaymentFailed, EventInvoicePaymentFailed:
		return r.setStatus(ctx, event, domain.InvoiceFailed)
	default:
		r.logger.InfoContext(ctx, "ignoring unhandled webhook event",
			"event_id", event.ID, "event_type", event.Type)
		return nil
	}
}

// completeCheckout links the processor's payment reference to our invoice
// (echoed back through checkout metadata) and marks it paid.
func (r *Reconciler) completeCheckout(ctx context.Context, event Event) error {
	if event.Data.InvoiceID == "" {
		return fmt.Errorf("event %s: checkout.completed without invoice_id", event.ID)
	}

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		invoices := repository.NewSQLiteInvoiceRepo(tx)

		inv, err := invoices.GetByID(ctx, event.Data.InvoiceID)
		if err != nil {
			return fmt.Errorf("event %s: %w", event.ID, err)
		}

		changed := inv.Status != domain.InvoicePaid
		inv.ProcessorRef = event.Data.ProcessorRef
		inv.Status = domain.InvoicePaid
		inv.UpdatedAt = time.Now().UTC()
		if err := invoices.Update(ctx, inv); err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return appendChange(ctx, tx, inv, domain.InvoicePaid, event)
	})
}

// setStatus resolves the invoice by exact processor reference and writes
// the target status. A paid invoice is never downgraded by a late or
// replayed failure event, which keeps paid/failed pairs order-independent.
func (r *Reconciler) setStatus(ctx context.Context, event Event, status domain.InvoiceStatus) error {
	if event.Data.ProcessorRef == "" {
		return fmt.Errorf("event %s: %s without processor_ref", event.ID, event.Type)
	}

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		invoices := repository.NewSQLiteInvoiceRepo(tx)

		inv, err := invoices.GetByProcessorRef(ctx, event.Data.ProcessorRef)
		if err != nil {
			return fmt.Errorf("event %s: %w", event.ID, err)
		}

		if inv.Status == status {
			return nil
		}
		if inv.Status == domain.InvoicePaid && status == domain.InvoiceFailed {
			r.logger.InfoContext(ctx, "ignoring failure event for paid invoice",
				"event_id", event.ID, "invoice_id", inv.ID)
			return nil
		}

		inv.Status = status
		inv.UpdatedAt = time.Now().UTC()
		if err := invoices.Update(ctx, inv); err != nil {
			return err
		}
		return appendChange(ctx, tx, inv, status, event)
	})
}

// appendChange records a reconciled status change on the sprint's log,
// attributed to the processor rather than a human actor.
func appendChange(ctx context.Context, tx db.DBTX, inv *domain.Invoice, status domain.InvoiceStatus, event Event) error {
	changes := repository.NewSQLiteChangeLogRepo(tx)
	return changes.Append(ctx, &domain.ChangeEntry{
		ID:        uuid.New().String(),
		SprintID:  inv.SprintID,
		Summary:   fmt.Sprintf("Invoice %q marked %s (%s)", inv.Label, status, event.Type),
		Actor:     "payment-processor",
		CreatedAt: time.Now().UTC(),
	})
}
