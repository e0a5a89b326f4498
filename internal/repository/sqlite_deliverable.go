package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// deliverableColumns is the canonical SELECT column list for deliverables.
const deliverableColumns = `id, name, category, base_points, base_hours, base_price,
		scope, active, created_at, updated_at`

// SQLiteDeliverableRepo implements DeliverableRepo using a SQLite database.
type SQLiteDeliverableRepo struct {
	conn db.DBTX
}

// NewSQLiteDeliverableRepo creates a new SQLiteDeliverableRepo.
func NewSQLiteDeliverableRepo(conn db.DBTX) *SQLiteDeliverableRepo {
	return &SQLiteDeliverableRepo{conn: conn}
}

func (r *SQLiteDeliverableRepo) Create(ctx context.Context, d *domain.Deliverable) error {
	query := `INSERT INTO deliverables (id, name, category, base_points, base_hours, base_price,
		scope, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Category,
		d.BasePoints,
		d.BaseHours,
		d.BasePrice,
		d.Scope,
		boolToInt(d.Active),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting deliverable: %w", err)
	}
	return nil
}

func (r *SQLiteDeliverableRepo) GetByID(ctx context.Context, id string) (*domain.Deliverable, error) {
	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return scanDeliverable(row)
}

func (r *SQLiteDeliverableRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Deliverable, error) {
	query := `SELECT ` + deliverableColumns + ` FROM deliverables`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY category, name`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing deliverables: %w", err)
	}
	defer rows.Close()

	var items []*domain.Deliverable
	for rows.Next() {
		d, err := scanDeliverableRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliverables: %w", err)
	}
	return items, nil
}

func (r *SQLiteDeliverableRepo) Update(ctx context.Context, d *domain.Deliverable) error {
	query := `UPDATE deliverables SET name = ?, category = ?, base_points = ?, base_hours = ?,
		base_price = ?, scope = ?, active = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		d.Name,
		d.Category,
		d.BasePoints,
		d.BaseHours,
		d.BasePrice,
		d.Scope,
		boolToInt(d.Active),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deliverable: %w", err)
	}
	return nil
}

// Deactivate soft-retires a catalog row. Deliverables are never deleted;
// existing sprint snapshots keep a valid reference.
func (r *SQLiteDeliverableRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE deliverables SET active = 0, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating deliverable: %w", err)
	}
	return nil
}

func scanDeliverable(row *sql.Row) (*domain.Deliverable, error) {
	var d domain.Deliverable
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&d.ID, &d.Name, &d.Category, &d.BasePoints, &d.BaseHours, &d.BasePrice,
		&d.Scope, &activeInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deliverable: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning deliverable: %w", err)
	}
	return populateDeliverable(&d, activeInt, createdAtStr, updatedAtStr)
}

func scanDeliverableRow(rows *sql.Rows) (*domain.Deliverable, error) {
	var d domain.Deliverable
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.BasePoints, &d.BaseHours, &d.BasePrice,
		&d.Scope, &activeInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning deliverable row: %w", err)
	}
	return populateDeliverable(&d, activeInt, createdAtStr, updatedAtStr)
}

func populateDeliverable(d *domain.Deliverable, activeInt int, createdAtStr, updatedAtStr string) (*domain.Deliverable, error) {
	d.Active = intToBool(activeInt)

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return d, nil
}
