package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTimesheet(t *testing.T) {
	sheet := Timesheet{
		From:        "2024-03-01",
		To:          "2024-03-31",
		GeneratedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		Rows: []TimesheetRow{
			{Date: "Mar 10, 2024", Employee: "Budi", CheckIn: "09:00", CheckOut: "17:30", Breaks: "0h 30m", Worked: "8.00"},
		},
		TotalHours: "8.00",
	}

	out, err := RenderTimesheet(sheet)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderTimesheet_Empty(t *testing.T) {
	out, err := RenderTimesheet(Timesheet{TotalHours: "0.00"})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTimesheetPeriod(t *testing.T) {
	assert.Equal(t, "2024-03-01 - 2024-03-31", Timesheet{From: "2024-03-01", To: "2024-03-31"}.period())
	assert.Equal(t, "from 2024-03-01", Timesheet{From: "2024-03-01"}.period())
	assert.Equal(t, "until 2024-03-31", Timesheet{To: "2024-03-31"}.period())
	assert.Equal(t, "all records", Timesheet{}.period())
}

func TestRenderInvoice(t *testing.T) {
	out, err := RenderInvoice(Invoice{
		Number:       "INV-001",
		CustomerName: "PT Maju",
		Status:       "unpaid",
		IssuedAt:     "2024-03-01",
		DueAt:        "2024-03-31",
		Amount:       decimal.RequireFromString("1500000.5"),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
