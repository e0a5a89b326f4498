package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/testutil"
)

func TestCatalogService_Deliverables(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	d := &domain.Deliverable{Name: "Brand Audit", BasePoints: 8, BasePrice: 1200}
	require.NoError(t, env.catalog.CreateDeliverable(ctx, d))
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "generic", d.Category)
	assert.True(t, d.Active)

	err := env.catalog.CreateDeliverable(ctx, &domain.Deliverable{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)
	err = env.catalog.CreateDeliverable(ctx, &domain.Deliverable{Name: "X", Category: "haircuts"})
	assert.ErrorIs(t, err, ErrValidation)
	err = env.catalog.CreateDeliverable(ctx, &domain.Deliverable{Name: "X", BasePoints: -1})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.catalog.DeactivateDeliverable(ctx, d.ID))

	active, err := env.catalog.ListDeliverables(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := env.catalog.ListDeliverables(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalogService_Packages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.seedDeliverable(t)

	pkg := &domain.Package{
		Name: "Launch Pack",
		Entries: []domain.PackageEntry{
			{DeliverableID: d.ID, OrderIndex: 0, DefaultComplexity: 2.0, Quantity: 1},
		},
	}
	require.NoError(t, env.catalog.CreatePackage(ctx, pkg))

	got, err := env.catalog.GetPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, d.ID, got.Entries[0].DeliverableID)
}

func TestCatalogService_PackageValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d := env.seedDeliverable(t)
	inactive := env.seedDeliverable(t, testutil.WithInactive())

	// Template defaults live in a wider complexity range than line items.
	err := env.catalog.CreatePackage(ctx, &domain.Package{
		Name: "P",
		Entries: []domain.PackageEntry{
			{DeliverableID: d.ID, DefaultComplexity: 6.0, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = env.catalog.CreatePackage(ctx, &domain.Package{
		Name: "P",
		Entries: []domain.PackageEntry{
			{DeliverableID: inactive.ID, DefaultComplexity: 1.0, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrInactiveDeliverable)

	err = env.catalog.CreatePackage(ctx, &domain.Package{
		Name: "P",
		Entries: []domain.PackageEntry{
			{DeliverableID: d.ID, DefaultComplexity: 1.0, Quantity: 0},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
