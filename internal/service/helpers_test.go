package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/auth"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/storage"
	"github.com/halstead-studio/studioops/internal/testutil"
	"github.com/halstead-studio/studioops/internal/workshop"
)

var (
	owner  = auth.Identity{AccountID: "acct-1", Email: "maya@halstead.studio", Role: auth.RoleOwner}
	member = auth.Identity{AccountID: "acct-2", Email: "sam@halstead.studio", Role: auth.RoleMember}
)

// stubGenerator is a canned workshop.Generator for service tests. The
// onGenerate hook runs before returning, to model state changing while a
// slow collaborator call is in flight.
type stubGenerator struct {
	result     *workshop.Result
	err        error
	calls      int
	onGenerate func()
}

func (g *stubGenerator) Generate(ctx context.Context, sc workshop.SprintContext) (*workshop.Result, error) {
	g.calls++
	if g.onGenerate != nil {
		g.onGenerate()
	}
	if g.err != nil {
		return g.result, g.err
	}
	return g.result, nil
}

func (g *stubGenerator) Available(ctx context.Context) bool {
	return g.err == nil
}

func agendaResult() *workshop.Result {
	return &workshop.Result{
		Agenda: &workshop.Agenda{
			Title: "Kickoff Workshop",
			Sessions: []workshop.Session{
				{Week: 1, Title: "Discovery", Topics: []string{"goals"}},
			},
		},
		Raw:   `{"title":"Kickoff Workshop","sessions":[{"week":1,"title":"Discovery","topics":["goals"]}]}`,
		Model: "agenda-v1",
	}
}

type testEnv struct {
	db        *sql.DB
	sprints   SprintService
	versions  VersionService
	settle    SettlementService
	catalog   CatalogService
	generator *stubGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	gen := &stubGenerator{result: agendaResult()}

	env := &testEnv{
		db:        database,
		generator: gen,
	}
	env.sprints = NewSprintService(
		repository.NewSQLiteSprintRepo(database),
		repository.NewSQLiteSprintDeliverableRepo(database),
		repository.NewSQLiteDeliverableRepo(database),
		repository.NewSQLitePackageRepo(database),
		repository.NewSQLiteChangeLogRepo(database),
		repository.NewSQLiteAgendaGenerationRepo(database),
		uow,
		gen,
		storage.NewDirStore(t.TempDir()),
		DefaultPricingParams(),
	)
	env.versions = NewVersionService(repository.NewSQLiteVersionRepo(database), uow)
	env.settle = NewSettlementService(
		repository.NewSQLiteSprintRepo(database),
		repository.NewSQLiteBudgetPlanRepo(database),
		repository.NewSQLiteInvoiceRepo(database),
		uow,
	)
	env.catalog = NewCatalogService(
		repository.NewSQLiteDeliverableRepo(database),
		repository.NewSQLitePackageRepo(database),
		DefaultPricingParams().TemplateBounds,
	)
	return env
}

// newSprintServiceWithStore builds a second sprint service over the same
// database with a caller-supplied attachment store.
func (e *testEnv) newSprintServiceWithStore(t *testing.T, store storage.Store) SprintService {
	t.Helper()
	return NewSprintService(
		repository.NewSQLiteSprintRepo(e.db),
		repository.NewSQLiteSprintDeliverableRepo(e.db),
		repository.NewSQLiteDeliverableRepo(e.db),
		repository.NewSQLitePackageRepo(e.db),
		repository.NewSQLiteChangeLogRepo(e.db),
		repository.NewSQLiteAgendaGenerationRepo(e.db),
		testutil.NewTestUoW(e.db),
		e.generator,
		store,
		DefaultPricingParams(),
	)
}

// seedDeliverable inserts a catalog deliverable directly.
func (e *testEnv) seedDeliverable(t *testing.T, opts ...testutil.DeliverableOption) *domain.Deliverable {
	t.Helper()
	d := testutil.NewTestDeliverable("Brand Audit", opts...)
	require.NoError(t, repository.NewSQLiteDeliverableRepo(e.db).Create(context.Background(), d))
	return d
}

// seedSprint inserts a sprint directly, bypassing the service.
func (e *testEnv) seedSprint(t *testing.T, opts ...testutil.SprintOption) *domain.Sprint {
	t.Helper()
	s := testutil.NewTestSprint("Acme Co", opts...)
	require.NoError(t, repository.NewSQLiteSprintRepo(e.db).Create(context.Background(), s))
	return s
}

func (e *testEnv) countRows(t *testing.T, table, where string, args ...any) int {
	t.Helper()
	var n int
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	require.NoError(t, e.db.QueryRow(query, args...).Scan(&n))
	return n
}
