package payments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/testutil"
)

func seedInvoice(t *testing.T, database *sql.DB, processorRef string) *domain.Invoice {
	t.Helper()
	ctx := context.Background()

	sprint := testutil.NewTestSprint("Acme Co")
	require.NoError(t, repository.NewSQLiteSprintRepo(database).Create(ctx, sprint))

	now := time.Now().UTC()
	inv := &domain.Invoice{
		ID:           uuid.New().String(),
		SprintID:     sprint.ID,
		Label:        "Deposit",
		Amount:       3000,
		Status:       domain.InvoicePending,
		ProcessorRef: processorRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repository.NewSQLiteInvoiceRepo(database).Create(ctx, inv))
	return inv
}

func invoiceStatus(t *testing.T, database *sql.DB, id string) domain.InvoiceStatus {
	t.Helper()
	inv, err := repository.NewSQLiteInvoiceRepo(database).GetByID(context.Background(), id)
	require.NoError(t, err)
	return inv.Status
}

func TestReconciler_PaymentSucceeded(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_123")

	err := rec.Apply(context.Background(), Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, invoiceStatus(t, database, inv.ID))
}

func TestReconciler_PaymentFailed(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_123")

	err := rec.Apply(context.Background(), Event{
		ID: "evt_1", Type: EventInvoicePaymentFailed,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceFailed, invoiceStatus(t, database, inv.ID))
}

func TestReconciler_ExactRefMatchOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_12345")

	// A prefix of the stored reference must not match.
	err := rec.Apply(context.Background(), Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, domain.InvoicePending, invoiceStatus(t, database, inv.ID))
}

func TestReconciler_IdempotentReplay(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_123")
	ctx := context.Background()

	paid := Event{ID: "evt_1", Type: EventPaymentSucceeded, Data: EventData{ProcessorRef: "pi_123"}}
	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Apply(ctx, paid))
	}
	assert.Equal(t, domain.InvoicePaid, invoiceStatus(t, database, inv.ID))
}

func TestReconciler_PaidIsNotDowngradedByLateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_123")
	ctx := context.Background()

	paid := Event{ID: "evt_1", Type: EventPaymentSucceeded, Data: EventData{ProcessorRef: "pi_123"}}
	failed := Event{ID: "evt_2", Type: EventPaymentFailed, Data: EventData{ProcessorRef: "pi_123"}}

	// Both delivery orders converge on paid.
	require.NoError(t, rec.Apply(ctx, paid))
	require.NoError(t, rec.Apply(ctx, failed))
	assert.Equal(t, domain.InvoicePaid, invoiceStatus(t, database, inv.ID))

	other := seedInvoice(t, database, "pi_456")
	failedOther := Event{ID: "evt_3", Type: EventPaymentFailed, Data: EventData{ProcessorRef: "pi_456"}}
	paidOther := Event{ID: "evt_4", Type: EventPaymentSucceeded, Data: EventData{ProcessorRef: "pi_456"}}
	require.NoError(t, rec.Apply(ctx, failedOther))
	require.NoError(t, rec.Apply(ctx, paidOther))
	assert.Equal(t, domain.InvoicePaid, invoiceStatus(t, database, other.ID))
}

func TestReconciler_StatusChangeAppendsChangeLog(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "pi_123")

	countChanges := func() int {
		var n int
		require.NoError(t, database.QueryRow(
			`SELECT COUNT(*) FROM change_log WHERE sprint_id = ?`, inv.SprintID).Scan(&n))
		return n
	}

	err := rec.Apply(context.Background(), Event{
		ID: "evt_1", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countChanges())

	// Replays and ignored downgrades leave the log alone.
	require.NoError(t, rec.Apply(context.Background(), Event{
		ID: "evt_2", Type: EventPaymentSucceeded,
		Data: EventData{ProcessorRef: "pi_123"},
	}))
	require.NoError(t, rec.Apply(context.Background(), Event{
		ID: "evt_3", Type: EventPaymentFailed,
		Data: EventData{ProcessorRef: "pi_123"},
	}))
	assert.Equal(t, 1, countChanges())
}

func TestReconciler_CheckoutCompleted(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	inv := seedInvoice(t, database, "")
	ctx := context.Background()

	err := rec.Apply(ctx, Event{
		ID: "evt_1", Type: EventCheckoutCompleted,
		Data: EventData{InvoiceID: inv.ID, ProcessorRef: "cs_789"},
	})
	require.NoError(t, err)

	got, err := repository.NewSQLiteInvoiceRepo(database).GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
	assert.Equal(t, "cs_789", got.ProcessorRef)

	// Later events can now resolve the invoice by the linked reference.
	err = rec.Apply(ctx, Event{
		ID: "evt_2", Type: EventInvoicePaid,
		Data: EventData{ProcessorRef: "cs_789"},
	})
	require.NoError(t, err)
}

func TestReconciler_MissingFieldsAndUnknownType(t *testing.T) {
	database := testutil.NewTestDB(t)
	rec := NewReconciler(testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	err := rec.Apply(ctx, Event{ID: "evt_1", Type: EventPaymentSucceeded})
	assert.Error(t, err)

	err = rec.Apply(ctx, Event{ID: "evt_2", Type: EventCheckoutCompleted})
	assert.Error(t, err)

	// Unknown types are acknowledged without error.
	assert.NoError(t, rec.Apply(ctx, Event{ID: "evt_3", Type: "customer.created"}))
}
