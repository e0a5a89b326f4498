package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/halstead-studio/studioops/internal/repository"
	"github.com/halstead-studio/studioops/internal/testutil"
)

func TestCreateBudgetPlan_DerivesAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	t.Run("standard", func(t *testing.T) {
		plan := &domain.BudgetPlan{
			SprintID:   sprint.ID,
			TotalValue: 10000,
			UpfrontPct: 0.3,
			EquityPct:  0.1,
		}
		require.NoError(t, env.settle.CreateBudgetPlan(ctx, owner, plan))

		assert.InDelta(t, 3000, plan.UpfrontAmount, 0.001)
		assert.InDelta(t, 1000, plan.EquityAmount, 0.001)
		assert.InDelta(t, 6000, plan.CompletionAmount, 0.001)
		assert.Zero(t, plan.DeferredAmount)
	})

	t.Run("deferred", func(t *testing.T) {
		plan := &domain.BudgetPlan{
			SprintID:   sprint.ID,
			TotalValue: 10000,
			UpfrontPct: 0.2,
			Deferred:   true,
		}
		require.NoError(t, env.settle.CreateBudgetPlan(ctx, owner, plan))

		assert.InDelta(t, 2000, plan.UpfrontAmount, 0.001)
		assert.InDelta(t, 8000, plan.DeferredAmount, 0.001)
		assert.Zero(t, plan.CompletionAmount)
	})

	t.Run("guards", func(t *testing.T) {
		err := env.settle.CreateBudgetPlan(ctx, member, &domain.BudgetPlan{SprintID: sprint.ID})
		assert.ErrorIs(t, err, ErrForbidden)

		err = env.settle.CreateBudgetPlan(ctx, owner, &domain.BudgetPlan{SprintID: sprint.ID, UpfrontPct: 1.5})
		assert.ErrorIs(t, err, ErrValidation)

		err = env.settle.CreateBudgetPlan(ctx, owner, &domain.BudgetPlan{SprintID: "missing"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestGenerateInvoices_Standard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	plan := testutil.NewTestBudgetPlan(sprint.ID, 10000, testutil.WithStandard(3000, 7000))
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	outcome, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	assert.True(t, outcome.Created)
	require.Len(t, outcome.Invoices, 2)
	assert.Equal(t, "Deposit", outcome.Invoices[0].Label)
	assert.InDelta(t, 3000, outcome.Invoices[0].Amount, 0.001)
	assert.Equal(t, 0, outcome.Invoices[0].SortOrder)
	assert.Equal(t, "Final Payment", outcome.Invoices[1].Label)
	assert.InDelta(t, 7000, outcome.Invoices[1].Amount, 0.001)
	assert.Equal(t, 1, outcome.Invoices[1].SortOrder)
	for _, inv := range outcome.Invoices {
		assert.Equal(t, domain.InvoicePending, inv.Status)
	}
}

func TestGenerateInvoices_Deferred(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	plan := testutil.NewTestBudgetPlan(sprint.ID, 10000, testutil.WithDeferred(2000, 8000))
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	outcome, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 2)
	assert.Equal(t, "Deposit", outcome.Invoices[0].Label)
	assert.Equal(t, "Deferred Payment", outcome.Invoices[1].Label)
}

func TestGenerateInvoices_SkipsZeroLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	// No upfront: only the deferred line is emitted.
	plan := testutil.NewTestBudgetPlan(sprint.ID, 8000, testutil.WithDeferred(0, 8000))
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	outcome, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 1)
	assert.Equal(t, "Deferred Payment", outcome.Invoices[0].Label)
}

func TestGenerateInvoices_FallbackLine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	// Both computed amounts zero: a single generic line for the full
	// value keeps the sprint invoiced.
	plan := testutil.NewTestBudgetPlan(sprint.ID, 5000)
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	outcome, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 1)
	assert.Equal(t, "Sprint Payment", outcome.Invoices[0].Label)
	assert.InDelta(t, 5000, outcome.Invoices[0].Amount, 0.001)
}

func TestGenerateInvoices_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	plan := testutil.NewTestBudgetPlan(sprint.ID, 10000, testutil.WithStandard(3000, 7000))
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	first, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	assert.False(t, second.Created)
	require.Len(t, second.Invoices, len(first.Invoices))
	for i := range first.Invoices {
		assert.Equal(t, first.Invoices[i].ID, second.Invoices[i].ID)
		assert.Equal(t, first.Invoices[i].Label, second.Invoices[i].Label)
	}
	assert.Equal(t, 2, env.countRows(t, "invoices", "sprint_id = ?", sprint.ID))
}

func TestGenerateInvoices_AppendsChangeLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	plan := testutil.NewTestBudgetPlan(sprint.ID, 10000, testutil.WithStandard(3000, 7000))
	require.NoError(t, repository.NewSQLiteBudgetPlanRepo(env.db).Create(ctx, plan))

	_, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.countRows(t, "change_log", "sprint_id = ?", sprint.ID))

	// The idempotent short-circuit writes nothing, including to the log.
	_, err = env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.countRows(t, "change_log", "sprint_id = ?", sprint.ID))
}

func TestGenerateInvoices_UsesNewestPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)
	plans := repository.NewSQLiteBudgetPlanRepo(env.db)

	old := testutil.NewTestBudgetPlan(sprint.ID, 5000, testutil.WithStandard(1000, 4000))
	old.CreatedAt = old.CreatedAt.Add(-time.Hour)
	require.NoError(t, plans.Create(ctx, old))
	newest := testutil.NewTestBudgetPlan(sprint.ID, 12000, testutil.WithStandard(4000, 8000))
	require.NoError(t, plans.Create(ctx, newest))

	outcome, err := env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	require.NoError(t, err)

	require.Len(t, outcome.Invoices, 2)
	assert.InDelta(t, 4000, outcome.Invoices[0].Amount, 0.001)
	assert.InDelta(t, 8000, outcome.Invoices[1].Amount, 0.001)
}

func TestGenerateInvoices_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sprint := env.seedSprint(t)

	_, err := env.settle.GenerateInvoices(ctx, member, sprint.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.settle.GenerateInvoices(ctx, owner, sprint.ID)
	assert.ErrorIs(t, err, ErrNoBudgetPlan)

	_, err = env.settle.GenerateInvoices(ctx, owner, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
