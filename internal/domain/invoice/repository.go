package invoice

import "context"

type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (Invoice, error)
	Create(ctx context.Context, newInvoice Invoice) (Invoice, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
	Delete(ctx context.Context, id string) error

	// List returns invoices newest first
	List(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
}
