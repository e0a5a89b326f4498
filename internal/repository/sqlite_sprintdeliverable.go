package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// sprintDeliverableColumns is the canonical SELECT column list for sprint_deliverables.
const sprintDeliverableColumns = `id, sprint_id, deliverable_id, name, description, category, scope,
		complexity, quantity, base_points, adjusted_points, adjusted_hours, adjusted_price,
		content, notes, attachments, delivery_url, current_version, created_at, updated_at`

// SQLiteSprintDeliverableRepo implements SprintDeliverableRepo using a SQLite database.
type SQLiteSprintDeliverableRepo struct {
	conn db.DBTX
}

// NewSQLiteSprintDeliverableRepo creates a new SQLiteSprintDeliverableRepo.
func NewSQLiteSprintDeliverableRepo(conn db.DBTX) *SQLiteSprintDeliverableRepo {
	return &SQLiteSprintDeliverableRepo{conn: conn}
}

func (r *SQLiteSprintDeliverableRepo) Create(ctx context.Context, sd *domain.SprintDeliverable) error {
	query := `INSERT INTO sprint_deliverables (id, sprint_id, deliverable_id, name, description, category, scope,
		complexity, quantity, base_points, adjusted_points, adjusted_hours, adjusted_price,
		content, notes, attachments, delivery_url, current_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		sd.ID,
		sd.SprintID,
		sd.DeliverableID,
		sd.Name,
		sd.Description,
		sd.Category,
		sd.Scope,
		sd.Complexity,
		sd.Quantity,
		sd.BasePoints,
		sd.AdjustedPoints,
		sd.AdjustedHours,
		sd.AdjustedPrice,
		sd.Content,
		sd.Notes,
		pathsToJSON(sd.Attachments),
		sd.DeliveryURL,
		sd.CurrentVersion,
		sd.CreatedAt.Format(time.RFC3339),
		sd.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint deliverable: %w", err)
	}
	return nil
}

func (r *SQLiteSprintDeliverableRepo) GetByID(ctx context.Context, id string) (*domain.SprintDeliverable, error) {
	query := `SELECT ` + sprintDeliverableColumns + ` FROM sprint_deliverables WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return scanSprintDeliverable(row)
}

func (r *SQLiteSprintDeliverableRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.SprintDeliverable, error) {
	query := `SELECT ` + sprintDeliverableColumns + ` FROM sprint_deliverables WHERE sprint_id = ? ORDER BY created_at`
	rows, err := r.conn.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("listing sprint deliverables: %w", err)
	}
	defer rows.Close()

	var items []*domain.SprintDeliverable
	for rows.Next() {
		sd, err := scanSprintDeliverableRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprint deliverables: %w", err)
	}
	return items, nil
}

func (r *SQLiteSprintDeliverableRepo) Update(ctx context.Context, sd *domain.SprintDeliverable) error {
	query := `UPDATE sprint_deliverables SET name = ?, description = ?, category = ?, scope = ?,
		complexity = ?, quantity = ?, base_points = ?, adjusted_points = ?, adjusted_hours = ?, adjusted_price = ?,
		content = ?, notes = ?, attachments = ?, delivery_url = ?, current_version = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		sd.Name,
		sd.Description,
		sd.Category,
		sd.Scope,
		sd.Complexity,
		sd.Quantity,
		sd.BasePoints,
		sd.AdjustedPoints,
		sd.AdjustedHours,
		sd.AdjustedPrice,
		sd.Content,
		sd.Notes,
		pathsToJSON(sd.Attachments),
		sd.DeliveryURL,
		sd.CurrentVersion,
		sd.UpdatedAt.Format(time.RFC3339),
		sd.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint deliverable: %w", err)
	}
	return nil
}

func (r *SQLiteSprintDeliverableRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sprint_deliverables WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting sprint deliverable: %w", err)
	}
	return nil
}

func scanSprintDeliverable(row *sql.Row) (*domain.SprintDeliverable, error) {
	var sd domain.SprintDeliverable
	var attachmentsStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&sd.ID, &sd.SprintID, &sd.DeliverableID, &sd.Name, &sd.Description, &sd.Category, &sd.Scope,
		&sd.Complexity, &sd.Quantity, &sd.BasePoints, &sd.AdjustedPoints, &sd.AdjustedHours, &sd.AdjustedPrice,
		&sd.Content, &sd.Notes, &attachmentsStr, &sd.DeliveryURL, &sd.CurrentVersion,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sprint deliverable: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sprint deliverable: %w", err)
	}
	return populateSprintDeliverable(&sd, attachmentsStr, createdAtStr, updatedAtStr)
}

func scanSprintDeliverableRow(rows *sql.Rows) (*domain.SprintDeliverable, error) {
	var sd domain.SprintDeliverable
	var attachmentsStr, createdAtStr, updatedAtStr string

	err := rows.Scan(
		&sd.ID, &sd.SprintID, &sd.DeliverableID, &sd.Name, &sd.Description, &sd.Category, &sd.Scope,
		&sd.Complexity, &sd.Quantity, &sd.BasePoints, &sd.AdjustedPoints, &sd.AdjustedHours, &sd.AdjustedPrice,
		&sd.Content, &sd.Notes, &attachmentsStr, &sd.DeliveryURL, &sd.CurrentVersion,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning sprint deliverable row: %w", err)
	}
	return populateSprintDeliverable(&sd, attachmentsStr, createdAtStr, updatedAtStr)
}

func populateSprintDeliverable(sd *domain.SprintDeliverable, attachmentsStr, createdAtStr, updatedAtStr string) (*domain.SprintDeliverable, error) {
	sd.Attachments = pathsFromJSON(attachmentsStr)

	var parseErr error
	sd.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	sd.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return sd, nil
}
