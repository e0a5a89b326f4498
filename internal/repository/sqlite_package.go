package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// SQLitePackageRepo implements PackageRepo using a SQLite database.
type SQLitePackageRepo struct {
	conn db.DBTX
}

// NewSQLitePackageRepo creates a new SQLitePackageRepo.
func NewSQLitePackageRepo(conn db.DBTX) *SQLitePackageRepo {
	return &SQLitePackageRepo{conn: conn}
}

func (r *SQLitePackageRepo) Create(ctx context.Context, p *domain.Package) error {
	query := `INSERT INTO packages (id, name, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting package: %w", err)
	}

	for _, e := range p.Entries {
		entryQuery := `INSERT INTO package_deliverables (package_id, deliverable_id, order_index, default_complexity, quantity)
			VALUES (?, ?, ?, ?, ?)`
		if _, err := r.conn.ExecContext(ctx, entryQuery,
			p.ID, e.DeliverableID, e.OrderIndex, e.DefaultComplexity, e.Quantity); err != nil {
			return fmt.Errorf("inserting package entry: %w", err)
		}
	}
	return nil
}

func (r *SQLitePackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	query := `SELECT id, name, description, active, created_at, updated_at FROM packages WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	p, err := scanPackage(row)
	if err != nil {
		return nil, err
	}

	entries, err := r.listEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Entries = entries
	return p, nil
}

func (r *SQLitePackageRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Package, error) {
	query := `SELECT id, name, description, active, created_at, updated_at FROM packages`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		var p domain.Package
		var activeInt int
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &activeInt, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning package row: %w", err)
		}
		if err := populatePackage(&p, activeInt, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		packages = append(packages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating packages: %w", err)
	}

	for _, p := range packages {
		entries, err := r.listEntries(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Entries = entries
	}
	return packages, nil
}

func (r *SQLitePackageRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE packages SET active = 0, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating package: %w", err)
	}
	return nil
}

func (r *SQLitePackageRepo) listEntries(ctx context.Context, packageID string) ([]domain.PackageEntry, error) {
	query := `SELECT deliverable_id, order_index, default_complexity, quantity
		FROM package_deliverables WHERE package_id = ? ORDER BY order_index`
	rows, err := r.conn.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("listing package entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.PackageEntry
	for rows.Next() {
		var e domain.PackageEntry
		if err := rows.Scan(&e.DeliverableID, &e.OrderIndex, &e.DefaultComplexity, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scanning package entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package entries: %w", err)
	}
	return entries, nil
}

func scanPackage(row *sql.Row) (*domain.Package, error) {
	var p domain.Package
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &p.Description, &activeInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("package: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning package: %w", err)
	}
	if err := populatePackage(&p, activeInt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

func populatePackage(p *domain.Package, activeInt int, createdAtStr, updatedAtStr string) error {
	p.Active = intToBool(activeInt)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return nil
}
