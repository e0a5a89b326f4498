package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/halstead-studio/studioops/internal/db"
	"github.com/halstead-studio/studioops/internal/domain"
)

// invoiceColumns is the canonical SELECT column list for invoices.
const invoiceColumns = `id, sprint_id, label, amount, status, sort_order, processor_ref, created_at, updated_at`

// SQLiteInvoiceRepo implements InvoiceRepo using a SQLite database.
type SQLiteInvoiceRepo struct {
	conn db.DBTX
}

// NewSQLiteInvoiceRepo creates a new SQLiteInvoiceRepo.
func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{conn: conn}
}

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (id, sprint_id, label, amount, status, sort_order, processor_ref, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		inv.ID,
		inv.SprintID,
		inv.Label,
		inv.Amount,
		string(inv.Status),
		inv.SortOrder,
		inv.ProcessorRef,
		inv.CreatedAt.Format(time.RFC3339),
		inv.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}
	return nil
}

func (r *SQLiteInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return scanInvoice(row)
}

// GetByProcessorRef resolves an invoice by the payment processor's canonical
// identifier. The match is exact equality on the dedicated indexed column;
// substring matching against stored URLs is deliberately not supported.
func (r *SQLiteInvoiceRepo) GetByProcessorRef(ctx context.Context, ref string) (*domain.Invoice, error) {
	if ref == "" {
		return nil, fmt.Errorf("invoice: empty processor ref: %w", ErrNotFound)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE processor_ref = ?`
	row := r.conn.QueryRowContext(ctx, query, ref)
	return scanInvoice(row)
}

func (r *SQLiteInvoiceRepo) ListBySprint(ctx context.Context, sprintID string) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE sprint_id = ? ORDER BY sort_order`
	rows, err := r.conn.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		inv, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}
	return invoices, nil
}

func (r *SQLiteInvoiceRepo) CountBySprint(ctx context.Context, sprintID string) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE sprint_id = ?`, sprintID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}
	return count, nil
}

func (r *SQLiteInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET label = ?, amount = ?, status = ?, sort_order = ?, processor_ref = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		inv.Label,
		inv.Amount,
		string(inv.Status),
		inv.SortOrder,
		inv.ProcessorRef,
		inv.UpdatedAt.Format(time.RFC3339),
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}
	return nil
}

func scanInvoice(row *sql.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(&inv.ID, &inv.SprintID, &inv.Label, &inv.Amount, &statusStr,
		&inv.SortOrder, &inv.ProcessorRef, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invoice: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning invoice: %w", err)
	}
	return populateInvoice(&inv, statusStr, createdAtStr, updatedAtStr)
}

func scanInvoiceRow(rows *sql.Rows) (*domain.Invoice, error) {
	var inv domain.Invoice
	var statusStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&inv.ID, &inv.SprintID, &inv.Label, &inv.Amount, &statusStr,
		&inv.SortOrder, &inv.ProcessorRef, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning invoice row: %w", err)
	}
	return populateInvoice(&inv, statusStr, createdAtStr, updatedAtStr)
}

func populateInvoice(inv *domain.Invoice, statusStr, createdAtStr, updatedAtStr string) (*domain.Invoice, error) {
	inv.Status = domain.InvoiceStatus(statusStr)

	var parseErr error
	inv.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	inv.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return inv, nil
}
