package repository

import (
	"context"

	"github.com/halstead-studio/studioops/internal/domain"
)

type DeliverableRepo interface {
	Create(ctx context.Context, d *domain.Deliverable) error
	GetByID(ctx context.Context, id string) (*domain.Deliverable, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Deliverable, error)
	Update(ctx context.Context, d *domain.Deliverable) error
	Deactivate(ctx context.Context, id string) error
}

type PackageRepo interface {
	Create(ctx context.Context, p *domain.Package) error
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Package, error)
	Deactivate(ctx context.Context, id string) error
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint) error
	GetByID(ctx context.Context, id string) (*domain.Sprint, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Sprint, error)
	List(ctx context.Context) ([]*domain.Sprint, error)
	Update(ctx context.Context, s *domain.Sprint) error
	Delete(ctx context.Context, id string) error
}

type SprintDeliverableRepo interface {
	Create(ctx context.Context, sd *domain.SprintDeliverable) error
	GetByID(ctx context.Context, id string) (*domain.SprintDeliverable, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.SprintDeliverable, error)
	Update(ctx context.Context, sd *domain.SprintDeliverable) error
	Delete(ctx context.Context, id string) error
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.DeliverableVersion) error
	Exists(ctx context.Context, sprintDeliverableID string, version domain.Version) (bool, error)
	ListByDeliverable(ctx context.Context, sprintDeliverableID string) ([]*domain.DeliverableVersion, error)
}

type BudgetPlanRepo interface {
	Create(ctx context.Context, p *domain.BudgetPlan) error
	GetLatestBySprint(ctx context.Context, sprintID string) (*domain.BudgetPlan, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	GetByProcessorRef(ctx context.Context, ref string) (*domain.Invoice, error)
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.Invoice, error)
	CountBySprint(ctx context.Context, sprintID string) (int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}

type AgendaGenerationRepo interface {
	Create(ctx context.Context, sprintID, model, rawResponse string, success bool) (string, error)
}

type ChangeLogRepo interface {
	Append(ctx context.Context, e *domain.ChangeEntry) error
	ListBySprint(ctx context.Context, sprintID string) ([]*domain.ChangeEntry, error)
}
