package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/report"
)

type InvoiceServiceImpl struct {
	invoiceRepo invoice.InvoiceRepository
	now         func() time.Time
}

func NewInvoiceService(invoiceRepo invoice.InvoiceRepository) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

func requireManager(ctx context.Context) (user.Actor, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if !actor.CanManage() {
		return user.Actor{}, user.ErrManagerAccessRequired
	}
	return actor, nil
}

// apply copies a validated request onto inv.
func apply(inv *invoice.Invoice, req invoice.CreateInvoiceRequest) {
	status, _ := invoice.ParseStatus(req.Status)
	issued, _ := time.Parse("2006-01-02", req.IssuedAt)

	inv.Number = req.Number
	inv.CustomerName = req.CustomerName
	inv.Amount = req.Amount.Round(2)
	inv.Currency = req.Currency
	inv.Status = status
	inv.IssuedAt = issued
	inv.DueAt = nil
	if req.DueAt != "" {
		due, _ := time.Parse("2006-01-02", req.DueAt)
		inv.DueAt = &due
	}
}

func (s *InvoiceServiceImpl) getInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

// ListInvoices implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.InvoiceResponse, error) {
	if _, err := jwt.ActorFromContext(ctx); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		status, ok := invoice.ParseStatus(filter.Status)
		if !ok {
			return nil, invoice.ErrInvalidStatus
		}
		filter.Status = string(status)
	}

	invoices, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	now := s.now()
	out := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, inv.ToResponse(now))
	}
	return out, nil
}

// GetInvoice implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	if _, err := jwt.ActorFromContext(ctx); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	inv, err := s.getInvoice(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return inv.ToResponse(s.now()), nil
}

// CreateInvoice implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	actor, err := requireManager(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	var inv invoice.Invoice
	apply(&inv, req)
	inv.CreatedBy = &actor.UserID

	created, err := s.invoiceRepo.Create(ctx, inv)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNumberExists) {
			return invoice.InvoiceResponse{}, err
		}
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	slog.Info("Invoice created", "invoice_id", created.ID, "number", created.Number, "user_id", actor.UserID)
	return created.ToResponse(s.now()), nil
}

// UpdateInvoice implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	actor, err := requireManager(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv, err := s.getInvoice(ctx, req.ID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	apply(&inv, req.CreateInvoiceRequest)

	updated, err := s.invoiceRepo.Update(ctx, inv)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNumberExists) || errors.Is(err, invoice.ErrInvoiceNotFound) {
			return invoice.InvoiceResponse{}, err
		}
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	slog.Info("Invoice updated", "invoice_id", updated.ID, "status", updated.Status, "user_id", actor.UserID)
	return updated.ToResponse(s.now()), nil
}

// DeleteInvoice implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, id string) error {
	actor, err := requireManager(ctx)
	if err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	slog.Info("Invoice deleted", "invoice_id", id, "user_id", actor.UserID)
	return nil
}

// RenderPDF implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if _, err := jwt.ActorFromContext(ctx); err != nil {
		return nil, "", err
	}
	inv, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, "", err
	}

	due := "-"
	if inv.DueAt != nil {
		due = inv.DueAt.Format("2006-01-02")
	}
	doc, err := report.RenderInvoice(report.Invoice{
		Number:       inv.Number,
		CustomerName: inv.CustomerName,
		Status:       string(inv.Status),
		IssuedAt:     inv.IssuedAt.Format("2006-01-02"),
		DueAt:        due,
		Amount:       inv.Amount,
		Currency:     inv.Currency,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return doc, "invoice-" + inv.Number + ".pdf", nil
}
