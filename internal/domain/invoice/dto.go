package invoice

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type InvoiceFilter struct {
	Status string `json:"status"`
	Search string `json:"search"`
}

type CreateInvoiceRequest struct {
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	IssuedAt     string          `json:"issued_at"`
	DueAt        string          `json:"due_at"`
}

func (r *CreateInvoiceRequest) Validate() error {
	r.Number = strings.TrimSpace(r.Number)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Number) {
		errs = append(errs, validator.ValidationError{
			Field:   "number",
			Message: "number is required",
		})
	} else if len(r.Number) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "number",
			Message: "number must not exceed 50 characters",
		})
	}
	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_name",
			Message: "customer_name is required",
		})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}
	if len(r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency must be a 3-letter code",
		})
	}
	if _, ok := ParseStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	issued, issuedOK := validator.IsValidDate(r.IssuedAt)
	if !issuedOK {
		errs = append(errs, validator.ValidationError{
			Field:   "issued_at",
			Message: "issued_at must be in YYYY-MM-DD format",
		})
	}
	if r.DueAt != "" {
		due, ok := validator.IsValidDate(r.DueAt)
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{
				Field:   "due_at",
				Message: "due_at must be in YYYY-MM-DD format",
			})
		case issuedOK && due.Before(issued):
			errs = append(errs, validator.ValidationError{
				Field:   "due_at",
				Message: "due_at must not be before issued_at",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateInvoiceRequest struct {
	ID string `json:"-"`
	CreateInvoiceRequest
}

type InvoiceResponse struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	CustomerName string  `json:"customer_name"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	IssuedAt     string  `json:"issued_at"`
	DueAt        *string `json:"due_at,omitempty"`
	Overdue      bool    `json:"overdue"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (i Invoice) ToResponse(now time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		ID:           i.ID,
		Number:       i.Number,
		CustomerName: i.CustomerName,
		Amount:       i.Amount.StringFixed(2),
		Currency:     i.Currency,
		Status:       string(i.Status),
		IssuedAt:     i.IssuedAt.Format("2006-01-02"),
		Overdue:      i.IsOverdue(now),
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
	if i.DueAt != nil {
		due := i.DueAt.Format("2006-01-02")
		resp.DueAt = &due
	}
	return resp
}
