package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
)

type versionService struct {
	versions repository.VersionRepo
	uow      db.UnitOfWork
	obs      UseCaseObserver
}

func NewVersionService(versions repository.VersionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) VersionService {
	return &versionService{
		versions: versions,
		uow:      uow,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *versionService) CreateVersion(ctx context.Context, actor auth.Identity, sprintDeliverableID, requested string) (version *domain.DeliverableVersion, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "version.create", actor.Email, start, err, map[string]any{
			"sprint_deliverable_id": sprintDeliverableID,
			"version":               requested,
		})
	}()

	parsed, err := domain.ParseVersion(requested)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Validate, snapshot, and advance the pointer in one transaction so a
	// crash can never leave a snapshot without a matching pointer move.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txVersions := repository.NewSQLiteVersionRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		item, err := txItems.GetByID(ctx, sprintDeliverableID)
		if err != nil {
			return err
		}

		current, err := domain.ParseVersion(item.CurrentVersion)
		if err != nil {
			return fmt.Errorf("parsing current version pointer: %w", err)
		}
		if parsed.Compare(current) <= 0 {
			return fmt.Errorf("requested %s, current %s: %w", parsed, current, domain.ErrVersionNotIncreasing)
		}

		exists, err := txVersions.Exists(ctx, sprintDeliverableID, parsed)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("version %s: %w", parsed, domain.ErrVersionExists)
		}

		version = &domain.DeliverableVersion{
			ID:                  uuid.New().String(),
			SprintDeliverableID: sprintDeliverableID,
			Version:             parsed,
			Content:             item.Content,
			Notes:               item.Notes,
			TypeData:            item.DeliveryURL,
			Author:              actor.Email,
			CreatedAt:           time.Now().UTC(),
		}
		if err := txVersions.Create(ctx, version); err != nil {
			return err
		}

		item.CurrentVersion = parsed.String()
		item.UpdatedAt = time.Now().UTC()
		if err := txItems.Update(ctx, item); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(item.SprintID, actor,
			fmt.Sprintf("Versioned %q at %s", item.Name, parsed)))
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

func (s *versionService) ListVersions(ctx context.Context, sprintDeliverableID string) ([]*domain.DeliverableVersion, error) {
	return s.versions.ListByDeliverable(ctx, sprintDeliverableID)
}
