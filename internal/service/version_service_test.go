package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/testutil"
)

func (e *testEnv) seedComposedSprint(t *testing.T) *domain.SprintDeliverable {
	t.Helper()
	ctx := context.Background()
	sprint := e.seedSprint(t)
	d := e.seedDeliverable(t, testutil.WithBasePoints(8))
	item, err := e.sprints.AddDeliverable(ctx, owner, sprint.ID, d.ID, 1.0, 1)
	require.NoError(t, err)
	require.NoError(t, e.sprints.UpdateContent(ctx, owner, item.ID, "First draft of the audit"))
	return item
}

func TestVersionService_CreateVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)

	v, err := env.versions.CreateVersion(ctx, owner, item.ID, "1.0")
	require.NoError(t, err)

	assert.Equal(t, domain.Version{Major: 1, Minor: 0}, v.Version)
	assert.Equal(t, "First draft of the audit", v.Content)
	assert.Equal(t, owner.Email, v.Author)

	got, err := repository.NewSQLiteSprintDeliverableRepo(env.db).GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.CurrentVersion)
}

func TestVersionService_CreateVersionAppendsChangeLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)
	before := env.countRows(t, "change_log", "sprint_id = ?", item.SprintID)

	_, err := env.versions.CreateVersion(ctx, owner, item.ID, "1.0")
	require.NoError(t, err)
	assert.Equal(t, before+1, env.countRows(t, "change_log", "sprint_id = ?", item.SprintID))

	// A rejected version writes nothing.
	_, err = env.versions.CreateVersion(ctx, owner, item.ID, "1.0")
	require.Error(t, err)
	assert.Equal(t, before+1, env.countRows(t, "change_log", "sprint_id = ?", item.SprintID))
}

func TestVersionService_MonotonicOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)

	_, err := env.versions.CreateVersion(ctx, owner, item.ID, "1.5")
	require.NoError(t, err)

	// Anything at or below the pointer is rejected.
	_, err = env.versions.CreateVersion(ctx, owner, item.ID, "1.0")
	assert.ErrorIs(t, err, domain.ErrVersionNotIncreasing)
	_, err = env.versions.CreateVersion(ctx, owner, item.ID, "1.5")
	assert.ErrorIs(t, err, domain.ErrVersionNotIncreasing)

	// "1.10" exceeds "1.5" numerically even though it sorts lower as text.
	_, err = env.versions.CreateVersion(ctx, owner, item.ID, "1.10")
	require.NoError(t, err)

	_, err = env.versions.CreateVersion(ctx, owner, item.ID, "2.0")
	require.NoError(t, err)

	got, err := repository.NewSQLiteSprintDeliverableRepo(env.db).GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.CurrentVersion)
}

func TestVersionService_MalformedVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)

	for _, bad := range []string{"", "1", "1.2.3", "v1.0", "1.a", "-1.0"} {
		_, err := env.versions.CreateVersion(ctx, owner, item.ID, bad)
		assert.ErrorIs(t, err, ErrValidation, "version %q", bad)
	}

	// Nothing was written.
	assert.Equal(t, 0, env.countRows(t, "sprint_deliverable_versions", ""))
}

func TestVersionService_UnknownDeliverable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.versions.CreateVersion(context.Background(), owner, "missing", "1.0")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVersionService_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)

	for _, vs := range []string{"0.1", "1.0", "1.9", "1.10"} {
		_, err := env.versions.CreateVersion(ctx, owner, item.ID, vs)
		require.NoError(t, err)
	}

	versions, err := env.versions.ListVersions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, versions, 4)

	var got []string
	for _, v := range versions {
		got = append(got, v.Version.String())
	}
	assert.Equal(t, []string{"1.10", "1.9", "1.0", "0.1"}, got)
}

// Snapshots are immutable: a later content edit must not leak into an
// already-cut version.
func TestVersionService_SnapshotsAreImmutable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.seedComposedSprint(t)

	_, err := env.versions.CreateVersion(ctx, owner, item.ID, "1.0")
	require.NoError(t, err)

	require.NoError(t, env.sprints.UpdateContent(ctx, owner, item.ID, "Heavily revised draft"))

	versions, err := env.versions.ListVersions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "First draft of the audit", versions[0].Content)
}
