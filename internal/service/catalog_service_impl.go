package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/pricing"
	"github.com/halstead-studio/studioops/internal/repository"
)

type catalogService struct {
	deliverables   repository.DeliverableRepo
	packages       repository.PackageRepo
	templateBounds pricing.Bounds
}

func NewCatalogService(deliverables repository.DeliverableRepo, packages repository.PackageRepo, templateBounds pricing.Bounds) CatalogService {
	return &catalogService{
		deliverables:   deliverables,
		packages:       packages,
		templateBounds: templateBounds,
	}
}

func (s *catalogService) CreateDeliverable(ctx context.Context, d *domain.Deliverable) error {
	if d.Name == "" {
		return fmt.Errorf("%w: deliverable name is required", ErrValidation)
	}
	if d.Category != "" && !domain.ValidDeliverableCategories[d.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, d.Category)
	}
	if d.Category == "" {
		d.Category = "generic"
	}
	if d.BasePoints < 0 || d.BaseHours < 0 || d.BasePrice < 0 {
		return fmt.Errorf("%w: base values must not be negative", ErrValidation)
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	d.Active = true
	d.CreatedAt = now
	d.UpdatedAt = now
	return s.deliverables.Create(ctx, d)
}

func (s *catalogService) GetDeliverable(ctx context.Context, id string) (*domain.Deliverable, error) {
	return s.deliverables.GetByID(ctx, id)
}

func (s *catalogService) ListDeliverables(ctx context.Context, includeInactive bool) ([]*domain.Deliverable, error) {
	return s.deliverables.List(ctx, includeInactive)
}

func (s *catalogService) UpdateDeliverable(ctx context.Context, d *domain.Deliverable) error {
	if d.Category != "" && !domain.ValidDeliverableCategories[d.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, d.Category)
	}
	d.UpdatedAt = time.Now().UTC()
	return s.deliverables.Update(ctx, d)
}

func (s *catalogService) DeactivateDeliverable(ctx context.Context, id string) error {
	return s.deliverables.Deactivate(ctx, id)
}

func (s *catalogService) CreatePackage(ctx context.Context, p *domain.Package) error {
	if p.Name == "" {
		return fmt.Errorf("%w: package name is required", ErrValidation)
	}
	for i, entry := range p.Entries {
		if entry.DeliverableID == "" {
			return fmt.Errorf("%w: entry %d missing deliverable id", ErrValidation, i)
		}
		if !s.templateBounds.Contains(entry.DefaultComplexity) {
			return fmt.Errorf("%w: entry %d default complexity %.2f outside [%.1f, %.1f]",
				ErrValidation, i, entry.DefaultComplexity, s.templateBounds.Min, s.templateBounds.Max)
		}
		if entry.Quantity <= 0 {
			return fmt.Errorf("%w: entry %d quantity must be positive", ErrValidation, i)
		}
		// Every referenced deliverable must exist and be active at
		// authoring time.
		d, err := s.deliverables.GetByID(ctx, entry.DeliverableID)
		if err != nil {
			return fmt.Errorf("resolving package entry %d: %w", i, err)
		}
		if !d.Active {
			return fmt.Errorf("entry %d: %w", i, ErrInactiveDeliverable)
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.packages.Create(ctx, p)
}

func (s *catalogService) GetPackage(ctx context.Context, id string) (*domain.Package, error) {
	return s.packages.GetByID(ctx, id)
}

func (s *catalogService) ListPackages(ctx context.Context, includeInactive bool) ([]*domain.Package, error) {
	return s.packages.List(ctx, includeInactive)
}

func (s *catalogService) DeactivatePackage(ctx context.Context, id string) error {
	return s.packages.Deactivate(ctx, id)
}
