package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
	"github.com/google/uuid"
)

// SQLiteChangeLogRepo implements ChangeLogRepo using a SQLite database.
// The change log is append-only and display-only.
type SQLiteChangeLogRepo struct {
	conn db.DBTX
}

// NewSQLiteChangeLogRepo creates a new SQLiteChangeLogRepo.
func NewSQLiteChangeLogRepo(conn db.DBTX) *SQLiteChangeLogRepo {
	return &SQLiteChangeLogRepo{conn: conn}
}

func (r *SQLiteChangeLogRepo) Append(ctx context.Context, e *domain.ChangeEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO change_log (id, sprint_id, summary, actor, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		e.ID, e.SprintID, e.Summary, e.Actor, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("appending change log entry: %w", err)
	}
	return nil
}

func (r *SQLiteChangeLogRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.ChangeEntry, error) {
	query := `SELECT id, sprint_id, summary, actor, created_at FROM change_log
		WHERE sprint_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.conn.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("listing change log: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ChangeEntry
	for rows.Next() {
		var e domain.ChangeEntry
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.SprintID, &e.Summary, &e.Actor, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning change log entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change log: %w", err)
	}
	return entries, nil
}
