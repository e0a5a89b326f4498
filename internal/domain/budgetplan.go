package domain

import "time"

// BudgetPlan is a finalized compensation plan for a sprint. Plans are
// produced by the budget calculator and consumed read-only by the
// settlement generator; the newest plan for a sprint wins.
type BudgetPlan struct {
	ID       string
	SprintID string

	TotalValue float64
	UpfrontPct float64
	EquityPct  float64
	Deferred   bool
	MissPolicy string

	// Derived amounts, computed by the calculator.
	UpfrontAmount    float64
	EquityAmount     float64
	DeferredAmount   float64
	CompletionAmount float64

	CreatedAt time.Time
}
