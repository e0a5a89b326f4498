package domain

import "time"

// Sprint is a priced, time-boxed bundle of deliverables sold to a client.
// Totals are always a deterministic function of the composition rows; they
// are recomputed from scratch after every mutation and never hand-edited.
type Sprint struct {
	ID         string
	ClientName string
	Status     SprintStatus
	WeekCount  int
	StartsOn   *time.Time
	EndsOn     *time.Time

	// Package snapshot, captured at creation so later catalog edits never
	// retroactively change a committed sprint.
	PackageName        string
	PackageDescription string

	// ShareToken grants unauthenticated read access to the public view.
	ShareToken string

	// Derived totals.
	PointTotal       float64
	HourTotal        float64
	PriceTotal       float64
	DeliverableCount int

	// Workshop agenda, set by a successful collaborator generation.
	Agenda             string
	AgendaGenerationID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompositionOpen reports whether the deliverable set may still change.
// Adds, removes, and complexity edits are draft-only.
func (s *Sprint) CompositionOpen() bool {
	return s.Status == SprintDraft
}

// ContentEditable reports whether free-text content on the sprint's
// deliverables may be edited by the given caller. Complete sprints are
// locked for everyone except elevated callers.
func (s *Sprint) ContentEditable(elevated bool) bool {
	if s.Status != SprintComplete {
		return true
	}
	return elevated
}
