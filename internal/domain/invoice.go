package domain

import "time"

// Invoice is a payable line generated from a sprint's budget plan.
// ProcessorRef holds the payment processor's canonical identifier and is
// the sole reconciliation key; webhook handlers match on it by equality.
type Invoice struct {
	ID           string
	SprintID     string
	Label        string
	Amount       float64
	Status       InvoiceStatus
	SortOrder    int
	ProcessorRef string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
