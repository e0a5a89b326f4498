package repository

import (
	"context"
	"testing"
	"time"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSprintDeliverable(t *testing.T, dbx interface {
	Create(ctx context.Context, sd *domain.SprintDeliverable) error
}, sprints *SQLiteSprintRepo, deliverables *SQLiteDeliverableRepo) *domain.SprintDeliverable {
	t.Helper()
	ctx := context.Background()

	s := testutil.NewTestSprint("Acme Co")
	require.NoError(t, sprints.Create(ctx, s))
	d := testutil.NewTestDeliverable("Brand Audit")
	require.NoError(t, deliverables.Create(ctx, d))

	now := time.Now().UTC()
	sd := &domain.SprintDeliverable{
		ID:             "sd1",
		SprintID:       s.ID,
		DeliverableID:  d.ID,
		Name:           d.Name,
		Complexity:     1.0,
		Quantity:       1,
		CurrentVersion: "0.0",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, dbx.Create(ctx, sd))
	return sd
}

func TestVersionRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	versions := NewSQLiteVersionRepo(db)
	composition := NewSQLiteSprintDeliverableRepo(db)
	sd := seedSprintDeliverable(t, composition, NewSQLiteSprintRepo(db), NewSQLiteDeliverableRepo(db))
	ctx := context.Background()

	now := time.Now().UTC()
	for _, vs := range []string{"1.0", "1.9", "1.10", "2.0"} {
		v, err := domain.ParseVersion(vs)
		require.NoError(t, err)
		require.NoError(t, versions.Create(ctx, &domain.DeliverableVersion{
			ID:                  "v" + vs,
			SprintDeliverableID: sd.ID,
			Version:             v,
			Content:             "content at " + vs,
			Author:              "maya",
			CreatedAt:           now,
		}))
	}

	list, err := versions.ListByDeliverable(ctx, sd.ID)
	require.NoError(t, err)
	require.Len(t, list, 4)

	// Newest first under numeric (major, minor) ordering: 1.10 sorts above
	// 1.9, not below it.
	assert.Equal(t, "2.0", list[0].Version.String())
	assert.Equal(t, "1.10", list[1].Version.String())
	assert.Equal(t, "1.9", list[2].Version.String())
	assert.Equal(t, "1.0", list[3].Version.String())
}

func TestVersionRepo_Exists(t *testing.T) {
	db := testutil.NewTestDB(t)
	versions := NewSQLiteVersionRepo(db)
	composition := NewSQLiteSprintDeliverableRepo(db)
	sd := seedSprintDeliverable(t, composition, NewSQLiteSprintRepo(db), NewSQLiteDeliverableRepo(db))
	ctx := context.Background()

	v10 := domain.Version{Major: 1, Minor: 0}
	require.NoError(t, versions.Create(ctx, &domain.DeliverableVersion{
		ID:                  "v1",
		SprintDeliverableID: sd.ID,
		Version:             v10,
		CreatedAt:           time.Now().UTC(),
	}))

	exists, err := versions.Exists(ctx, sd.ID, v10)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = versions.Exists(ctx, sd.ID, domain.Version{Major: 1, Minor: 1})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVersionRepo_DuplicateRejectedByIndex(t *testing.T) {
	db := testutil.NewTestDB(t)
	versions := NewSQLiteVersionRepo(db)
	composition := NewSQLiteSprintDeliverableRepo(db)
	sd := seedSprintDeliverable(t, composition, NewSQLiteSprintRepo(db), NewSQLiteDeliverableRepo(db))
	ctx := context.Background()

	v := domain.Version{Major: 1, Minor: 0}
	require.NoError(t, versions.Create(ctx, &domain.DeliverableVersion{
		ID: "v1", SprintDeliverableID: sd.ID, Version: v, CreatedAt: time.Now().UTC(),
	}))

	err := versions.Create(ctx, &domain.DeliverableVersion{
		ID: "v2", SprintDeliverableID: sd.ID, Version: v, CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err, "unique index must reject a duplicate version number")
}
