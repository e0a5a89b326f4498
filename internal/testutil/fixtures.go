package testutil

import (
	"time"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/google/uuid"
)

// Deliverable options
type DeliverableOption func(*domain.Deliverable)

func WithBasePoints(p float64) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.BasePoints = p
	}
}

func WithBasePrice(p float64) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.BasePrice = p
	}
}

func WithCategory(c string) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Category = c
	}
}

func WithInactive() DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Active = false
	}
}

func NewTestDeliverable(name string, opts ...DeliverableOption) *domain.Deliverable {
	now := time.Now().UTC()
	d := &domain.Deliverable{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   "generic",
		BasePoints: 5,
		BaseHours:  5,
		BasePrice:  750,
		Scope:      "Standard scope for " + name,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithWeekCount(n int) SprintOption {
	return func(sp *domain.Sprint) {
		sp.WeekCount = n
	}
}

func NewTestSprint(clientName string, opts ...SprintOption) *domain.Sprint {
	now := time.Now().UTC()
	s := &domain.Sprint{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Status:     domain.SprintDraft,
		WeekCount:  4,
		ShareToken: uuid.New().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BudgetPlan options
type BudgetPlanOption func(*domain.BudgetPlan)

func WithDeferred(upfront, deferred float64) BudgetPlanOption {
	return func(p *domain.BudgetPlan) {
		p.Deferred = true
		p.UpfrontAmount = upfront
		p.DeferredAmount = deferred
	}
}

func WithStandard(upfront, completion float64) BudgetPlanOption {
	return func(p *domain.BudgetPlan) {
		p.Deferred = false
		p.UpfrontAmount = upfront
		p.CompletionAmount = completion
	}
}

func NewTestBudgetPlan(sprintID string, totalValue float64, opts ...BudgetPlanOption) *domain.BudgetPlan {
	p := &domain.BudgetPlan{
		ID:         uuid.New().String(),
		SprintID:   sprintID,
		TotalValue: totalValue,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
