package report

import (
	"github.com/shopspring/decimal"
)

type Invoice struct {
	Number       string
	CustomerName string
	Status       string
	IssuedAt     string
	DueAt        string
	Amount       decimal.Decimal
	Currency     string
}

// RenderInvoice writes a single-invoice summary page.
func RenderInvoice(inv Invoice) ([]byte, error) {
	m := newDocument("Invoice "+inv.Number, inv.CustomerName)

	currency := inv.Currency
	if currency == "" {
		currency = "IDR"
	}

	headers := []string{"Field", "Value"}
	rows := [][]string{
		{"Number", inv.Number},
		{"Customer", inv.CustomerName},
		{"Status", inv.Status},
		{"Issued", inv.IssuedAt},
		{"Due", inv.DueAt},
	}
	table(m, headers, rows, []uint{4, 8})

	footer(m, "Amount due", currency+" "+inv.Amount.StringFixed(2))

	return output(m)
}
