package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
)

type settlementService struct {
	sprints  repository.SprintRepo
	plans    repository.BudgetPlanRepo
	invoices repository.InvoiceRepo
	uow      db.UnitOfWork
	obs      UseCaseObserver
}

func NewSettlementService(sprints repository.SprintRepo, plans repository.BudgetPlanRepo, invoices repository.InvoiceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SettlementService {
	return &settlementService{
		sprints:  sprints,
		plans:    plans,
		invoices: invoices,
		uow:      uow,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *settlementService) CreateBudgetPlan(ctx context.Context, actor auth.Identity, plan *domain.BudgetPlan) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "settlement.create_budget_plan", actor.Email, start, err, map[string]any{"sprint_id": plan.SprintID})
	}()

	if !actor.Elevated() {
		return ErrForbidden
	}
	if plan.SprintID == "" {
		return fmt.Errorf("%w: sprint id is required", ErrValidation)
	}
	if plan.TotalValue < 0 {
		return fmt.Errorf("%w: total value must not be negative", ErrValidation)
	}
	if plan.UpfrontPct < 0 || plan.UpfrontPct > 1 {
		return fmt.Errorf("%w: upfront percentage must be within [0, 1]", ErrValidation)
	}
	if plan.EquityPct < 0 || plan.EquityPct > 1 {
		return fmt.Errorf("%w: equity percentage must be within [0, 1]", ErrValidation)
	}

	if _, err := s.sprints.GetByID(ctx, plan.SprintID); err != nil {
		return err
	}

	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	plan.CreatedAt = time.Now().UTC()

	// Derived amounts are computed here once; the settlement generator
	// consumes them read-only.
	plan.UpfrontAmount = roundCents(plan.TotalValue * plan.UpfrontPct)
	plan.EquityAmount = roundCents(plan.TotalValue * plan.EquityPct)
	cash := roundCents(plan.TotalValue - plan.EquityAmount)
	remainder := roundCents(cash - plan.UpfrontAmount)
	if remainder < 0 {
		remainder = 0
	}
	if plan.Deferred {
		plan.DeferredAmount = remainder
		plan.CompletionAmount = 0
	} else {
		plan.CompletionAmount = remainder
		plan.DeferredAmount = 0
	}

	return s.plans.Create(ctx, plan)
}

func (s *settlementService) GenerateInvoices(ctx context.Context, actor auth.Identity, sprintID string) (outcome *SettlementOutcome, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "settlement.generate_invoices", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	if !actor.Elevated() {
		return nil, ErrForbidden
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txPlans := repository.NewSQLiteBudgetPlanRepo(tx)
		txInvoices := repository.NewSQLiteInvoiceRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		if _, err := txSprints.GetByID(ctx, sprintID); err != nil {
			return err
		}

		// Idempotency guard: once any invoice exists, generation never
		// runs again for this sprint.
		count, err := txInvoices.CountBySprint(ctx, sprintID)
		if err != nil {
			return err
		}
		if count > 0 {
			existing, err := txInvoices.ListBySprint(ctx, sprintID)
			if err != nil {
				return err
			}
			outcome = &SettlementOutcome{Invoices: existing, Created: false}
			return nil
		}

		plan, err := txPlans.GetLatestBySprint(ctx, sprintID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("sprint %s: %w", sprintID, ErrNoBudgetPlan)
			}
			return err
		}

		lines := planLines(plan)
		now := time.Now().UTC()
		created := make([]*domain.Invoice, 0, len(lines))
		for i, line := range lines {
			inv := &domain.Invoice{
				ID:        uuid.New().String(),
				SprintID:  sprintID,
				Label:     line.label,
				Amount:    line.amount,
				Status:    domain.InvoicePending,
				SortOrder: i,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := txInvoices.Create(ctx, inv); err != nil {
				return err
			}
			created = append(created, inv)
		}

		outcome = &SettlementOutcome{Invoices: created, Created: true}
		return txChanges.Append(ctx, newChange(sprintID, actor,
			fmt.Sprintf("Generated %d invoice(s) from budget plan", len(created))))
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *settlementService) ListInvoices(ctx context.Context, sprintID string) ([]*domain.Invoice, error) {
	return s.invoices.ListBySprint(ctx, sprintID)
}

type invoiceLine struct {
	label  string
	amount float64
}

// planLines maps a budget plan to its invoice lines in emission order.
// Zero-amount lines are skipped; a plan producing no lines falls back to a
// single line for the full project value so a sprint is never left
// uninvoiced.
func planLines(plan *domain.BudgetPlan) []invoiceLine {
	var lines []invoiceLine
	if plan.UpfrontAmount > 0 {
		lines = append(lines, invoiceLine{label: "Deposit", amount: plan.UpfrontAmount})
	}
	if plan.Deferred {
		if plan.DeferredAmount > 0 {
			lines = append(lines, invoiceLine{label: "Deferred Payment", amount: plan.DeferredAmount})
		}
	} else if plan.CompletionAmount > 0 {
		lines = append(lines, invoiceLine{label: "Final Payment", amount: plan.CompletionAmount})
	}
	if len(lines) == 0 {
		lines = append(lines, invoiceLine{label: "Sprint Payment", amount: plan.TotalValue})
	}
	return lines
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
