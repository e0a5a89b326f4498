package service

import (
	"context"
	"io"
	"time"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/domain"
)

// CatalogService manages the deliverable and package reference catalog.
type CatalogService interface {
	CreateDeliverable(ctx context.Context, d *domain.Deliverable) error
	GetDeliverable(ctx context.Context, id string) (*domain.Deliverable, error)
	ListDeliverables(ctx context.Context, includeInactive bool) ([]*domain.Deliverable, error)
	UpdateDeliverable(ctx context.Context, d *domain.Deliverable) error
	DeactivateDeliverable(ctx context.Context, id string) error

	CreatePackage(ctx context.Context, p *domain.Package) error
	GetPackage(ctx context.Context, id string) (*domain.Package, error)
	ListPackages(ctx context.Context, includeInactive bool) ([]*domain.Package, error)
	DeactivatePackage(ctx context.Context, id string) error
}

// SprintService owns sprint composition: the deliverable set, its derived
// totals, status transitions, and the workshop agenda.
type SprintService interface {
	Create(ctx context.Context, actor auth.Identity, clientName string, weekCount int, packageID string) (*domain.Sprint, error)
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Sprint, error)
	List(ctx context.Context) ([]*domain.Sprint, error)

	AddDeliverable(ctx context.Context, actor auth.Identity, sprintID, deliverableID string, complexity float64, quantity int) (*domain.SprintDeliverable, error)
	RemoveDeliverable(ctx context.Context, actor auth.Identity, sprintID, sprintDeliverableID string) error
	UpdateComplexity(ctx context.Context, actor auth.Identity, sprintID, sprintDeliverableID string, complexity float64) (*domain.SprintDeliverable, error)
	UpdateContent(ctx context.Context, actor auth.Identity, sprintDeliverableID, content string) error
	UpdateNotes(ctx context.Context, actor auth.Identity, sprintDeliverableID, notes string) error
	UpdateDeliveryURL(ctx context.Context, actor auth.Identity, sprintDeliverableID, url string) error
	AttachFile(ctx context.Context, actor auth.Identity, sprintDeliverableID, filename string, r io.Reader) (string, error)
	ListDeliverables(ctx context.Context, sprintID string) ([]*domain.SprintDeliverable, error)

	Schedule(ctx context.Context, actor auth.Identity, sprintID string, startsOn, endsOn time.Time) error

	Transition(ctx context.Context, actor auth.Identity, sprintID string, to domain.SprintStatus) error
	GenerateWorkshop(ctx context.Context, actor auth.Identity, sprintID, clientContext string) (*domain.Sprint, error)
	RemoveWorkshop(ctx context.Context, actor auth.Identity, sprintID string) error

	ChangeLog(ctx context.Context, sprintID string) ([]*domain.ChangeEntry, error)
}

// VersionService is the append-only deliverable version ledger.
type VersionService interface {
	CreateVersion(ctx context.Context, actor auth.Identity, sprintDeliverableID, requested string) (*domain.DeliverableVersion, error)
	ListVersions(ctx context.Context, sprintDeliverableID string) ([]*domain.DeliverableVersion, error)
}

// SettlementOutcome is the structured result of invoice generation.
// Created is false when the idempotency guard short-circuited and the
// returned invoices are the pre-existing set.
type SettlementOutcome struct {
	Invoices []*domain.Invoice
	Created  bool
}

// SettlementService derives invoices from a sprint's budget plan.
type SettlementService interface {
	CreateBudgetPlan(ctx context.Context, actor auth.Identity, plan *domain.BudgetPlan) error
	GenerateInvoices(ctx context.Context, actor auth.Identity, sprintID string) (*SettlementOutcome, error)
	ListInvoices(ctx context.Context, sprintID string) ([]*domain.Invoice, error)
}
