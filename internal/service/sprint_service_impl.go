package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/pricing"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/storage"
	"github.com/halstead-studio/studioops/internal/workshop"
)

// PricingParams bundles the conversion ratios and complexity bounds a
// service needs, injected from configuration.
type PricingParams struct {
	Ratios         pricing.Ratios
	ItemBounds     pricing.Bounds
	TemplateBounds pricing.Bounds
}

// DefaultPricingParams returns the studio's standard pricing parameters.
func DefaultPricingParams() PricingParams {
	return PricingParams{
		Ratios:         pricing.DefaultRatios(),
		ItemBounds:     pricing.ItemBounds(),
		TemplateBounds: pricing.TemplateBounds(),
	}
}

type sprintService struct {
	sprints   repository.SprintRepo
	items     repository.SprintDeliverableRepo
	catalog   repository.DeliverableRepo
	packages  repository.PackageRepo
	changes   repository.ChangeLogRepo
	gens      repository.AgendaGenerationRepo
	uow       db.UnitOfWork
	generator workshop.Generator
	store     storage.Store
	pricing   PricingParams
	obs       UseCaseObserver
}

func NewSprintService(
	sprints repository.SprintRepo,
	items repository.SprintDeliverableRepo,
	catalog repository.DeliverableRepo,
	packages repository.PackageRepo,
	changes repository.ChangeLogRepo,
	gens repository.AgendaGenerationRepo,
	uow db.UnitOfWork,
	generator workshop.Generator,
	store storage.Store,
	params PricingParams,
	observers ...UseCaseObserver,
) SprintService {
	return &sprintService{
		sprints:   sprints,
		items:     items,
		catalog:   catalog,
		packages:  packages,
		changes:   changes,
		gens:      gens,
		uow:       uow,
		generator: generator,
		store:     store,
		pricing:   params,
		obs:       useCaseObserverOrNoop(observers),
	}
}

func (s *sprintService) Create(ctx context.Context, actor auth.Identity, clientName string, weekCount int, packageID string) (sprint *domain.Sprint, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.create", actor.Email, start, err, map[string]any{"client": clientName})
	}()

	if clientName == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if weekCount <= 0 {
		weekCount = 4
	}

	now := time.Now().UTC()
	sprint = &domain.Sprint{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Status:     domain.SprintDraft,
		WeekCount:  weekCount,
		ShareToken: uuid.New().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var pkg *domain.Package
	if packageID != "" {
		pkg, err = s.packages.GetByID(ctx, packageID)
		if err != nil {
			return nil, fmt.Errorf("loading package: %w", err)
		}
		sprint.PackageName = pkg.Name
		sprint.PackageDescription = pkg.Description
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txCatalog := repository.NewSQLiteDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		if err := txSprints.Create(ctx, sprint); err != nil {
			return err
		}

		if pkg != nil {
			for _, entry := range pkg.Entries {
				d, err := txCatalog.GetByID(ctx, entry.DeliverableID)
				if err != nil {
					return fmt.Errorf("resolving package deliverable: %w", err)
				}
				if !d.Active {
					return fmt.Errorf("package deliverable %q: %w", d.Name, ErrInactiveDeliverable)
				}
				item := newSprintDeliverable(sprint.ID, d, entry.DefaultComplexity, entry.Quantity, s.pricing.TemplateBounds, s.pricing.Ratios)
				if err := txItems.Create(ctx, item); err != nil {
					return err
				}
			}
			if err := s.recomputeTotals(ctx, txSprints, txItems, sprint.ID); err != nil {
				return err
			}
		}

		summary := "Sprint created"
		if pkg != nil {
			summary = fmt.Sprintf("Sprint created from package %q", pkg.Name)
		}
		return txChanges.Append(ctx, newChange(sprint.ID, actor, summary))
	})
	if err != nil {
		return nil, err
	}

	return s.sprints.GetByID(ctx, sprint.ID)
}

func (s *sprintService) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

func (s *sprintService) GetByShareToken(ctx context.Context, token string) (*domain.Sprint, error) {
	return s.sprints.GetByShareToken(ctx, token)
}

func (s *sprintService) List(ctx context.Context) ([]*domain.Sprint, error) {
	return s.sprints.List(ctx)
}

func (s *sprintService) ListDeliverables(ctx context.Context, sprintID string) ([]*domain.SprintDeliverable, error) {
	return s.items.ListBySprint(ctx, sprintID)
}

func (s *sprintService) AddDeliverable(ctx context.Context, actor auth.Identity, sprintID, deliverableID string, complexity float64, quantity int) (item *domain.SprintDeliverable, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.add_deliverable", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if complexity == 0 {
		complexity = 1.0
	}
	if !s.pricing.ItemBounds.Contains(complexity) {
		return nil, fmt.Errorf("%w: complexity %.2f outside [%.1f, %.1f]",
			ErrValidation, complexity, s.pricing.ItemBounds.Min, s.pricing.ItemBounds.Max)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txCatalog := repository.NewSQLiteDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if err := compositionGuard(sprint, actor); err != nil {
			return err
		}

		d, err := txCatalog.GetByID(ctx, deliverableID)
		if err != nil {
			return fmt.Errorf("resolving deliverable: %w", err)
		}
		if !d.Active {
			return fmt.Errorf("%q: %w", d.Name, ErrInactiveDeliverable)
		}

		item = newSprintDeliverable(sprintID, d, complexity, quantity, s.pricing.ItemBounds, s.pricing.Ratios)
		if err := txItems.Create(ctx, item); err != nil {
			return err
		}
		if err := s.recomputeTotals(ctx, txSprints, txItems, sprintID); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, fmt.Sprintf("Added %q (x%d, complexity %.2g)", d.Name, quantity, complexity)))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *sprintService) RemoveDeliverable(ctx context.Context, actor auth.Identity, sprintID, sprintDeliverableID string) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.remove_deliverable", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if err := compositionGuard(sprint, actor); err != nil {
			return err
		}

		item, err := txItems.GetByID(ctx, sprintDeliverableID)
		if err != nil {
			return err
		}
		if item.SprintID != sprintID {
			return fmt.Errorf("sprint deliverable: %w", repository.ErrNotFound)
		}

		if err := txItems.Delete(ctx, sprintDeliverableID); err != nil {
			return err
		}
		if err := s.recomputeTotals(ctx, txSprints, txItems, sprintID); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, fmt.Sprintf("Removed %q", item.Name)))
	})
}

func (s *sprintService) UpdateComplexity(ctx context.Context, actor auth.Identity, sprintID, sprintDeliverableID string, complexity float64) (item *domain.SprintDeliverable, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.update_complexity", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	if !actor.Elevated() {
		return nil, ErrForbidden
	}
	if !s.pricing.ItemBounds.Contains(complexity) {
		return nil, fmt.Errorf("%w: complexity %.2f outside [%.1f, %.1f]",
			ErrValidation, complexity, s.pricing.ItemBounds.Min, s.pricing.ItemBounds.Max)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if err := compositionGuard(sprint, actor); err != nil {
			return err
		}

		item, err = txItems.GetByID(ctx, sprintDeliverableID)
		if err != nil {
			return err
		}
		if item.SprintID != sprintID {
			return fmt.Errorf("sprint deliverable: %w", repository.ErrNotFound)
		}

		item.Complexity = complexity
		applyPricing(item, s.pricing.ItemBounds, s.pricing.Ratios)
		item.UpdatedAt = time.Now().UTC()
		if err := txItems.Update(ctx, item); err != nil {
			return err
		}
		if err := s.recomputeTotals(ctx, txSprints, txItems, sprintID); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, fmt.Sprintf("Set complexity of %q to %.2g", item.Name, complexity)))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *sprintService) UpdateContent(ctx context.Context, actor auth.Identity, sprintDeliverableID, content string) error {
	return s.updateNarrative(ctx, actor, sprintDeliverableID, "content", func(item *domain.SprintDeliverable) {
		item.Content = content
	})
}

func (s *sprintService) UpdateNotes(ctx context.Context, actor auth.Identity, sprintDeliverableID, notes string) error {
	return s.updateNarrative(ctx, actor, sprintDeliverableID, "notes", func(item *domain.SprintDeliverable) {
		item.Notes = notes
	})
}

func (s *sprintService) UpdateDeliveryURL(ctx context.Context, actor auth.Identity, sprintDeliverableID, url string) error {
	return s.updateNarrative(ctx, actor, sprintDeliverableID, "delivery URL", func(item *domain.SprintDeliverable) {
		item.DeliveryURL = url
	})
}

func (s *sprintService) AttachFile(ctx context.Context, actor auth.Identity, sprintDeliverableID, filename string, r io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", ErrValidation)
	}

	// Pre-flight guard so nothing is streamed to storage for a locked
	// sprint or an unknown row.
	item, err := s.items.GetByID(ctx, sprintDeliverableID)
	if err != nil {
		return "", err
	}
	sprint, err := s.sprints.GetByID(ctx, item.SprintID)
	if err != nil {
		return "", err
	}
	if !sprint.ContentEditable(actor.Elevated()) {
		return "", domain.ErrSprintLocked
	}

	stored, err := s.store.Put(ctx, path.Join(sprintDeliverableID, filename), r)
	if err != nil {
		return "", fmt.Errorf("storing attachment: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		// Re-read inside the transaction; the pre-flight copy may be
		// stale by the time the upload finishes, and writing it back
		// would clobber concurrent edits.
		item, err := txItems.GetByID(ctx, sprintDeliverableID)
		if err != nil {
			return err
		}
		sprint, err := txSprints.GetByID(ctx, item.SprintID)
		if err != nil {
			return err
		}
		if !sprint.ContentEditable(actor.Elevated()) {
			return domain.ErrSprintLocked
		}

		item.Attachments = append(item.Attachments, stored)
		item.UpdatedAt = time.Now().UTC()
		if err := txItems.Update(ctx, item); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(item.SprintID, actor, fmt.Sprintf("Attached %q to %q", filename, item.Name)))
	})
	if err != nil {
		return "", err
	}
	return stored, nil
}

// updateNarrative applies a free-text edit to a composition row. Narrative
// edits never touch points, so no totals recompute runs.
func (s *sprintService) updateNarrative(ctx context.Context, actor auth.Identity, sprintDeliverableID, field string, apply func(*domain.SprintDeliverable)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txItems := repository.NewSQLiteSprintDeliverableRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		item, err := txItems.GetByID(ctx, sprintDeliverableID)
		if err != nil {
			return err
		}
		sprint, err := txSprints.GetByID(ctx, item.SprintID)
		if err != nil {
			return err
		}
		if !sprint.ContentEditable(actor.Elevated()) {
			return domain.ErrSprintLocked
		}

		apply(item)
		item.UpdatedAt = time.Now().UTC()
		if err := txItems.Update(ctx, item); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(item.SprintID, actor, fmt.Sprintf("Updated %s of %q", field, item.Name)))
	})
}

func (s *sprintService) Schedule(ctx context.Context, actor auth.Identity, sprintID string, startsOn, endsOn time.Time) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.schedule", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	if startsOn.IsZero() || endsOn.IsZero() {
		return fmt.Errorf("%w: both start and end dates are required", ErrValidation)
	}
	if !endsOn.After(startsOn) {
		return fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if !sprint.ContentEditable(actor.Elevated()) {
			return domain.ErrSprintLocked
		}

		sprint.StartsOn = &startsOn
		sprint.EndsOn = &endsOn
		sprint.UpdatedAt = time.Now().UTC()
		if err := txSprints.Update(ctx, sprint); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor,
			fmt.Sprintf("Scheduled %s to %s", startsOn.Format("2006-01-02"), endsOn.Format("2006-01-02"))))
	})
}

func (s *sprintService) Transition(ctx context.Context, actor auth.Identity, sprintID string, to domain.SprintStatus) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.transition", actor.Email, start, err, map[string]any{"sprint_id": sprintID, "to": string(to)})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(sprint.Status, to) {
			return fmt.Errorf("%s to %s: %w", sprint.Status, to, domain.ErrInvalidTransition)
		}

		from := sprint.Status
		sprint.Status = to
		sprint.UpdatedAt = time.Now().UTC()
		if err := txSprints.Update(ctx, sprint); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, fmt.Sprintf("Status changed from %s to %s", from, to)))
	})
}

func (s *sprintService) GenerateWorkshop(ctx context.Context, actor auth.Identity, sprintID, clientContext string) (sprint *domain.Sprint, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.generate_workshop", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	sprint, err = s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(sprint.Status, domain.SprintPendingClient) {
		return nil, fmt.Errorf("%s to %s: %w", sprint.Status, domain.SprintPendingClient, domain.ErrInvalidTransition)
	}

	items, err := s.items.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}

	sprintCtx := workshop.SprintContext{
		SprintID:      sprint.ID,
		SprintName:    sprint.ClientName,
		WeekCount:     sprint.WeekCount,
		ClientContext: clientContext,
	}
	for _, item := range items {
		sprintCtx.Deliverables = append(sprintCtx.Deliverables, workshop.DeliverableContext{
			Name:       item.Name,
			Category:   item.Category,
			Complexity: item.Complexity,
			Quantity:   item.Quantity,
		})
	}

	result, genErr := s.generator.Generate(ctx, sprintCtx)

	// The raw response is persisted for audit whether or not generation
	// succeeded; failures record an unsuccessful row and leave the sprint
	// untouched.
	if genErr != nil {
		raw, model := "", ""
		if result != nil {
			raw, model = result.Raw, result.Model
		}
		if _, auditErr := s.gens.Create(ctx, sprintID, model, raw, false); auditErr != nil {
			return nil, fmt.Errorf("recording failed generation: %w (generation error: %v)", auditErr, genErr)
		}
		return nil, fmt.Errorf("workshop generation: %w", genErr)
	}

	// The audit row outlives the transition attempt: a generation that
	// succeeded stays recorded even if the status check below fails.
	genID, err := s.gens.Create(ctx, sprintID, result.Model, result.Raw, true)
	if err != nil {
		return nil, fmt.Errorf("recording generation: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		// Re-read inside the transaction; the status may have moved since
		// the pre-flight check.
		sprint, err = txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(sprint.Status, domain.SprintPendingClient) {
			return fmt.Errorf("%s to %s: %w", sprint.Status, domain.SprintPendingClient, domain.ErrInvalidTransition)
		}

		sprint.Agenda = result.Agenda.Text()
		sprint.AgendaGenerationID = genID
		sprint.Status = domain.SprintPendingClient
		sprint.UpdatedAt = time.Now().UTC()
		if err := txSprints.Update(ctx, sprint); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, "Workshop agenda generated"))
	})
	if err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *sprintService) RemoveWorkshop(ctx context.Context, actor auth.Identity, sprintID string) (err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.obs, "sprint.remove_workshop", actor.Email, start, err, map[string]any{"sprint_id": sprintID})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSprints := repository.NewSQLiteSprintRepo(tx)
		txChanges := repository.NewSQLiteChangeLogRepo(tx)

		sprint, err := txSprints.GetByID(ctx, sprintID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(sprint.Status, domain.SprintStudioReview) {
			return fmt.Errorf("%s to %s: %w", sprint.Status, domain.SprintStudioReview, domain.ErrInvalidTransition)
		}

		sprint.Agenda = ""
		sprint.AgendaGenerationID = ""
		sprint.Status = domain.SprintStudioReview
		sprint.UpdatedAt = time.Now().UTC()
		if err := txSprints.Update(ctx, sprint); err != nil {
			return err
		}
		return txChanges.Append(ctx, newChange(sprintID, actor, "Workshop agenda removed"))
	})
}

func (s *sprintService) ChangeLog(ctx context.Context, sprintID string) ([]*domain.ChangeEntry, error) {
	return s.changes.ListBySprint(ctx, sprintID)
}

// recomputeTotals rebuilds a sprint's aggregate figures from its current
// composition rows. Totals are never patched incrementally.
func (s *sprintService) recomputeTotals(ctx context.Context, sprints repository.SprintRepo, items repository.SprintDeliverableRepo, sprintID string) error {
	sprint, err := sprints.GetByID(ctx, sprintID)
	if err != nil {
		return err
	}
	rows, err := items.ListBySprint(ctx, sprintID)
	if err != nil {
		return err
	}

	var points float64
	for _, row := range rows {
		points += row.AdjustedPoints
	}
	derived := pricing.Derive(points, s.pricing.Ratios)

	sprint.PointTotal = derived.Points
	sprint.HourTotal = derived.Hours
	sprint.PriceTotal = derived.Price
	sprint.DeliverableCount = len(rows)
	sprint.UpdatedAt = time.Now().UTC()
	return sprints.Update(ctx, sprint)
}

// newSprintDeliverable snapshots a catalog deliverable into a composition
// row and prices it.
func newSprintDeliverable(sprintID string, d *domain.Deliverable, complexity float64, quantity int, bounds pricing.Bounds, ratios pricing.Ratios) *domain.SprintDeliverable {
	now := time.Now().UTC()
	item := &domain.SprintDeliverable{
		ID:             uuid.New().String(),
		SprintID:       sprintID,
		DeliverableID:  d.ID,
		Name:           d.Name,
		Description:    d.Scope,
		Category:       d.Category,
		Scope:          d.Scope,
		Complexity:     bounds.Clamp(complexity),
		Quantity:       quantity,
		BasePoints:     d.BasePoints,
		CurrentVersion: "0.0",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyPricing(item, bounds, ratios)
	return item
}

func applyPricing(item *domain.SprintDeliverable, bounds pricing.Bounds, ratios pricing.Ratios) {
	adjusted := pricing.Compute(item.BasePoints, item.Complexity, item.Quantity, bounds, ratios)
	item.AdjustedPoints = adjusted.Points
	item.AdjustedHours = adjusted.Hours
	item.AdjustedPrice = adjusted.Price
}

// compositionGuard enforces the shared add/remove/complexity preconditions:
// complete sprints are locked outright for non-elevated callers, and the
// composition only changes in draft.
func compositionGuard(sprint *domain.Sprint, actor auth.Identity) error {
	if sprint.Status == domain.SprintComplete && !actor.Elevated() {
		return domain.ErrSprintLocked
	}
	if !sprint.CompositionOpen() {
		return domain.ErrCompositionFrozen
	}
	return nil
}

func newChange(sprintID string, actor auth.Identity, summary string) *domain.ChangeEntry {
	return &domain.ChangeEntry{
		ID:        uuid.New().String(),
		SprintID:  sprintID,
		Summary:   summary,
		Actor:     actor.Email,
		CreatedAt: time.Now().UTC(),
	}
}
