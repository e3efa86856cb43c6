package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
	StatusVoid  Status = "void"
)

// ParseStatus accepts a known status in any case; blank means draft.
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusDraft, true
	}
	switch Status(s) {
	case StatusDraft, StatusSent, StatusPaid, StatusVoid:
		return Status(s), true
	}
	return "", false
}

const DefaultCurrency = "IDR"

type Invoice struct {
	ID           string
	Number       string
	CustomerName string
	Amount       decimal.Decimal
	Currency     string
	Status       Status
	IssuedAt     time.Time
	DueAt        *time.Time
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOverdue reports an unpaid, non-void invoice past its due date.
func (i Invoice) IsOverdue(now time.Time) bool {
	if i.DueAt == nil || i.Status == StatusPaid || i.Status == StatusVoid {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return i.DueAt.Before(today)
}
