package domain

import "time"

// Deliverable is a catalog reference record. Catalog rows are authored by
// admins, rarely edited, and never deleted; retired rows are deactivated so
// existing sprint snapshots keep pointing at a real record.
type Deliverable struct {
	ID         string
	Name       string
	Category   string
	BasePoints float64
	BaseHours  float64
	BasePrice  float64
	Scope      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Package is an ordered bundle of catalog deliverables sold as a unit.
type Package struct {
	ID          string
	Name        string
	Description string
	Entries     []PackageEntry
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PackageEntry is one deliverable slot in a package, with the default
// complexity applied when the package seeds a new sprint.
type PackageEntry struct {
	DeliverableID     string
	OrderIndex        int
	DefaultComplexity float64
	Quantity          int
}
