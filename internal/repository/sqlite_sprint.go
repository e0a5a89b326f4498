package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// sprintColumns is the canonical SELECT column list for sprints.
const sprintColumns = `id, client_name, status, week_count, starts_on, ends_on,
		package_name, package_description, share_token,
		point_total, hour_total, price_total, deliverable_count,
		agenda, agenda_generation_id, created_at, updated_at`

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	conn db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{conn: conn}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (id, client_name, status, week_count, starts_on, ends_on,
		package_name, package_description, share_token,
		point_total, hour_total, price_total, deliverable_count,
		agenda, agenda_generation_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		s.ID,
		s.ClientName,
		string(s.Status),
		s.WeekCount,
		nullableTimeToString(s.StartsOn, dateLayout),
		nullableTimeToString(s.EndsOn, dateLayout),
		s.PackageName,
		s.PackageDescription,
		s.ShareToken,
		s.PointTotal,
		s.HourTotal,
		s.PriceTotal,
		s.DeliverableCount,
		s.Agenda,
		s.AgendaGenerationID,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return scanSprint(row)
}

func (r *SQLiteSprintRepo) GetByShareToken(ctx context.Context, token string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE share_token = ? AND share_token != ''`
	row := r.conn.QueryRowContext(ctx, query, token)
	return scanSprint(row)
}

func (r *SQLiteSprintRepo) List(ctx context.Context) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints ORDER BY created_at DESC`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprintRow(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return sprints, nil
}

func (r *SQLiteSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET client_name = ?, status = ?, week_count = ?, starts_on = ?, ends_on = ?,
		package_name = ?, package_description = ?, share_token = ?,
		point_total = ?, hour_total = ?, price_total = ?, deliverable_count = ?,
		agenda = ?, agenda_generation_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		s.ClientName,
		string(s.Status),
		s.WeekCount,
		nullableTimeToString(s.StartsOn, dateLayout),
		nullableTimeToString(s.EndsOn, dateLayout),
		s.PackageName,
		s.PackageDescription,
		s.ShareToken,
		s.PointTotal,
		s.HourTotal,
		s.PriceTotal,
		s.DeliverableCount,
		s.Agenda,
		s.AgendaGenerationID,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sprints WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}
	return nil
}

func scanSprint(row *sql.Row) (*domain.Sprint, error) {
	var s domain.Sprint
	var statusStr string
	var startsOnStr, endsOnStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&s.ID, &s.ClientName, &statusStr, &s.WeekCount, &startsOnStr, &endsOnStr,
		&s.PackageName, &s.PackageDescription, &s.ShareToken,
		&s.PointTotal, &s.HourTotal, &s.PriceTotal, &s.DeliverableCount,
		&s.Agenda, &s.AgendaGenerationID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sprint: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}
	return populateSprint(&s, statusStr, startsOnStr, endsOnStr, createdAtStr, updatedAtStr)
}

func scanSprintRow(rows *sql.Rows) (*domain.Sprint, error) {
	var s domain.Sprint
	var statusStr string
	var startsOnStr, endsOnStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&s.ID, &s.ClientName, &statusStr, &s.WeekCount, &startsOnStr, &endsOnStr,
		&s.PackageName, &s.PackageDescription, &s.ShareToken,
		&s.PointTotal, &s.HourTotal, &s.PriceTotal, &s.DeliverableCount,
		&s.Agenda, &s.AgendaGenerationID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning sprint row: %w", err)
	}
	return populateSprint(&s, statusStr, startsOnStr, endsOnStr, createdAtStr, updatedAtStr)
}

func populateSprint(s *domain.Sprint, statusStr string, startsOnStr, endsOnStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Sprint, error) {
	s.Status = domain.SprintStatus(statusStr)
	s.StartsOn = parseNullableTime(startsOnStr, dateLayout)
	s.EndsOn = parseNullableTime(endsOnStr, dateLayout)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}
