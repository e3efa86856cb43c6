package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

const invoiceColumns = `id, number, customer_name, amount, currency, status, issued_at, due_at, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.Number,
		&inv.CustomerName,
		&inv.Amount,
		&inv.Currency,
		&inv.Status,
		&inv.IssuedAt,
		&inv.DueAt,
		&inv.CreatedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return inv, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	if !validator.IsValidUUID(id) {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	q := GetQuerier(ctx, r.db)
	return scanInvoice(q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, newInvoice invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return invoice.Invoice{}, err
	}

	query := `
		INSERT INTO invoices (id, number, customer_name, amount, currency, status, issued_at, due_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + invoiceColumns
	created, err := scanInvoice(q.QueryRow(ctx, query,
		id,
		newInvoice.Number,
		newInvoice.CustomerName,
		newInvoice.Amount,
		newInvoice.Currency,
		newInvoice.Status,
		newInvoice.IssuedAt,
		newInvoice.DueAt,
		newInvoice.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return invoice.Invoice{}, invoice.ErrInvoiceNumberExists
		}
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}
	return created, nil
}

// Update implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Update(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET number = $2, customer_name = $3, amount = $4, currency = $5, status = $6,
			issued_at = $7, due_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + invoiceColumns
	updated, err := scanInvoice(q.QueryRow(ctx, query,
		inv.ID,
		inv.Number,
		inv.CustomerName,
		inv.Amount,
		inv.Currency,
		inv.Status,
		inv.IssuedAt,
		inv.DueAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return invoice.Invoice{}, invoice.ErrInvoiceNumberExists
		}
		return invoice.Invoice{}, err
	}
	return updated, nil
}

// Delete implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return invoice.ErrInvoiceNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		conditions = append(conditions, fmt.Sprintf("(number ILIKE $%d OR customer_name ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}
	return invoices, nil
}
