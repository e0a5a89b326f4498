package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// SQLiteBudgetPlanRepo implements BudgetPlanRepo using a SQLite database.
type SQLiteBudgetPlanRepo struct {
	conn db.DBTX
}

// NewSQLiteBudgetPlanRepo creates a new SQLiteBudgetPlanRepo.
func NewSQLiteBudgetPlanRepo(conn db.DBTX) *SQLiteBudgetPlanRepo {
	return &SQLiteBudgetPlanRepo{conn: conn}
}

func (r *SQLiteBudgetPlanRepo) Create(ctx context.Context, p *domain.BudgetPlan) error {
	query := `INSERT INTO budget_plans (id, sprint_id, total_value, upfront_pct, equity_pct,
		deferred, miss_policy, upfront_amount, equity_amount, deferred_amount, completion_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.SprintID,
		p.TotalValue,
		p.UpfrontPct,
		p.EquityPct,
		boolToInt(p.Deferred),
		p.MissPolicy,
		p.UpfrontAmount,
		p.EquityAmount,
		p.DeferredAmount,
		p.CompletionAmount,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting budget plan: %w", err)
	}
	return nil
}

// GetLatestBySprint returns the most recently created plan for a sprint.
// Settlement always generates against the newest plan.
func (r *SQLiteBudgetPlanRepo) GetLatestBySprint(ctx context.Context, sprintID string) (*domain.BudgetPlan, error) {
	query := `SELECT id, sprint_id, total_value, upfront_pct, equity_pct,
		deferred, miss_policy, upfront_amount, equity_amount, deferred_amount, completion_amount, created_at
		FROM budget_plans WHERE sprint_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`
	row := r.conn.QueryRowContext(ctx, query, sprintID)

	var p domain.BudgetPlan
	var deferredInt int
	var createdAtStr string
	err := row.Scan(&p.ID, &p.SprintID, &p.TotalValue, &p.UpfrontPct, &p.EquityPct,
		&deferredInt, &p.MissPolicy, &p.UpfrontAmount, &p.EquityAmount, &p.DeferredAmount,
		&p.CompletionAmount, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("budget plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning budget plan: %w", err)
	}
	p.Deferred = intToBool(deferredInt)
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
