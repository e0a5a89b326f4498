package service

import "errors"

var (
	// ErrForbidden indicates the caller lacks the privilege a use case
	// requires (settlement generation, complexity edits).
	ErrForbidden = errors.New("elevated privilege required")

	// ErrNoBudgetPlan indicates settlement was requested for a sprint with
	// no finalized budget plan.
	ErrNoBudgetPlan = errors.New("sprint has no budget plan")

	// ErrInactiveDeliverable indicates an add referenced a catalog
	// deliverable that has been deactivated.
	ErrInactiveDeliverable = errors.New("catalog deliverable is inactive")

	// ErrValidation wraps synchronous input problems: malformed version
	// strings, out-of-range complexity, missing required fields.
	ErrValidation = errors.New("validation failed")
)
