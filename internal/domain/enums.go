package domain

type SprintStatus string

const (
	SprintDraft         SprintStatus = "draft"
	SprintStudioReview  SprintStatus = "studio_review"
	SprintPendingClient SprintStatus = "pending_client"
	SprintComplete      SprintStatus = "complete"
)

// sprintTransitions is the full transition graph for sprint status. Any
// transition not listed here is rejected. The side branch from
// pending_client back to studio_review covers workshop removal.
var sprintTransitions = map[SprintStatus][]SprintStatus{
	SprintDraft:         {SprintStudioReview, SprintPendingClient},
	SprintStudioReview:  {SprintPendingClient},
	SprintPendingClient: {SprintComplete, SprintStudioReview},
	SprintComplete:      {},
}

// CanTransition reports whether a sprint may move from one status to another.
func CanTransition(from, to SprintStatus) bool {
	for _, next := range sprintTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceFailed  InvoiceStatus = "failed"
)

// ValidDeliverableCategories is the canonical set of accepted catalog
// category strings.
var ValidDeliverableCategories = map[string]bool{
	"strategy": true, "identity": true, "web": true, "content": true,
	"product": true, "research": true, "workshop": true, "generic": true,
}
