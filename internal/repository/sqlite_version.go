package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// SQLiteVersionRepo implements VersionRepo using a SQLite database.
// Version rows are append-only: there is deliberately no Update or Delete.
type SQLiteVersionRepo struct {
	conn db.DBTX
}

// NewSQLiteVersionRepo creates a new SQLiteVersionRepo.
func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{conn: conn}
}

func (r *SQLiteVersionRepo) Create(ctx context.Context, v *domain.DeliverableVersion) error {
	query := `INSERT INTO sprint_deliverable_versions (id, sprint_deliverable_id, major, minor,
		content, notes, type_data, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		v.ID,
		v.SprintDeliverableID,
		v.Version.Major,
		v.Version.Minor,
		v.Content,
		v.Notes,
		v.TypeData,
		v.Author,
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting deliverable version: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) Exists(ctx context.Context, sprintDeliverableID string, version domain.Version) (bool, error) {
	query := `SELECT COUNT(*) FROM sprint_deliverable_versions
		WHERE sprint_deliverable_id = ? AND major = ? AND minor = ?`
	var count int
	err := r.conn.QueryRowContext(ctx, query, sprintDeliverableID, version.Major, version.Minor).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking version existence: %w", err)
	}
	return count > 0, nil
}

// ListByDeliverable returns all versions newest-first under (major, minor)
// numeric ordering.
func (r *SQLiteVersionRepo) ListByDeliverable(ctx context.Context, sprintDeliverableID string) ([]*domain.DeliverableVersion, error) {
	query := `SELECT id, sprint_deliverable_id, major, minor, content, notes, type_data, author, created_at
		FROM sprint_deliverable_versions
		WHERE sprint_deliverable_id = ?
		ORDER BY major DESC, minor DESC`
	rows, err := r.conn.QueryContext(ctx, query, sprintDeliverableID)
	if err != nil {
		return nil, fmt.Errorf("listing deliverable versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.DeliverableVersion
	for rows.Next() {
		var v domain.DeliverableVersion
		var createdAtStr string
		if err := rows.Scan(&v.ID, &v.SprintDeliverableID, &v.Version.Major, &v.Version.Minor,
			&v.Content, &v.Notes, &v.TypeData, &v.Author, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning deliverable version: %w", err)
		}
		v.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		versions = append(versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliverable versions: %w", err)
	}
	return versions, nil
}
