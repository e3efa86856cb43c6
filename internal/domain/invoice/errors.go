package invoice

import "errors"

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceNumberExists = errors.New("invoice number already exists")
	ErrInvalidStatus       = errors.New("status must be one of draft, sent, paid, void")
)
