package invoice

import "context"

type InvoiceService interface {
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)

	// CreateInvoice, UpdateInvoice and DeleteInvoice require a manager or admin
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error

	// RenderPDF returns the invoice as a PDF document and its file name
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
}
