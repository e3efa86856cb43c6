package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeCounts splits the directory by role
type EmployeeCounts struct {
	Total    int64
	Managers int64
}

// AttendanceCounts covers today's check-ins and sessions still open
type AttendanceCounts struct {
	CheckedIn int64 // distinct employees with a check-in since the start of the day
	Open      int64
}

// InvoiceCounts is the invoice count and paid revenue
type InvoiceCounts struct {
	Total   int64
	Revenue decimal.Decimal
}

// DashboardRepository defines the interface for dashboard data access.
// A non-nil employeeID limits the count to that employee.
type DashboardRepository interface {
	GetEmployeeCounts(ctx context.Context) (EmployeeCounts, error)
	GetInvoiceCounts(ctx context.Context) (InvoiceCounts, error)
	GetAttendanceCounts(ctx context.Context, dayStart time.Time, employeeID *string) (AttendanceCounts, error)
	CountPendingLeaves(ctx context.Context, employeeID *string) (int64, error)
}
