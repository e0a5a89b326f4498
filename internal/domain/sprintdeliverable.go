package domain

import "time"

// SprintDeliverable is one composition line item: a catalog deliverable as
// sold inside a particular sprint. Name, description, category, and scope
// are copied from the catalog at add time so in-flight sprints are immune
// to later catalog edits.
type SprintDeliverable struct {
	ID            string
	SprintID      string
	DeliverableID string

	// Catalog snapshot.
	Name        string
	Description string
	Category    string
	Scope       string

	Complexity float64
	Quantity   int

	// Derived via the pricing ratios from the snapshot base points.
	BasePoints     float64
	AdjustedPoints float64
	AdjustedHours  float64
	AdjustedPrice  float64

	Content     string
	Notes       string
	Attachments []string
	DeliveryURL string

	// CurrentVersion is the "major.minor" pointer advanced by the version
	// ledger. "0.0" means no version has been cut yet.
	CurrentVersion string

	CreatedAt time.Time
	UpdatedAt time.Time
}
