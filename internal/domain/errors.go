package domain

import "errors"

var (
	// ErrSprintLocked indicates a mutation was attempted on a complete
	// sprint by a caller without elevated privilege.
	ErrSprintLocked = errors.New("sprint is locked")

	// ErrInvalidTransition indicates a status change not present in the
	// sprint transition graph.
	ErrInvalidTransition = errors.New("invalid sprint status transition")

	// ErrCompositionFrozen indicates a composition change (add, remove,
	// complexity edit) outside draft status.
	ErrCompositionFrozen = errors.New("sprint composition is frozen outside draft")

	// ErrVersionNotIncreasing indicates a requested version that does not
	// exceed the current version pointer.
	ErrVersionNotIncreasing = errors.New("version must exceed current version")

	// ErrVersionExists indicates a version number already recorded for the
	// same sprint deliverable.
	ErrVersionExists = errors.New("version already exists")
)
