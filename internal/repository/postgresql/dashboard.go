package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/dashboard"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeCounts returns total and manager counts in single query
func (r *dashboardRepositoryImpl) GetEmployeeCounts(ctx context.Context) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE role = 'manager') AS managers
		FROM employees
	`

	var counts dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query).Scan(&counts.Total, &counts.Managers); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to get employee counts: %w", err)
	}
	return counts, nil
}

// GetInvoiceCounts returns invoice count and paid revenue in single query
func (r *dashboardRepositoryImpl) GetInvoiceCounts(ctx context.Context) (dashboard.InvoiceCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) AS revenue
		FROM invoices
	`

	var counts dashboard.InvoiceCounts
	if err := q.QueryRow(ctx, query).Scan(&counts.Total, &counts.Revenue); err != nil {
		return dashboard.InvoiceCounts{}, fmt.Errorf("failed to get invoice counts: %w", err)
	}
	return counts, nil
}

// GetAttendanceCounts returns today's distinct check-ins and open sessions in single query
func (r *dashboardRepositoryImpl) GetAttendanceCounts(ctx context.Context, dayStart time.Time, employeeID *string) (dashboard.AttendanceCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(DISTINCT employee_id) FILTER (WHERE check_in >= $1) AS checked_in,
			COUNT(*) FILTER (WHERE check_out IS NULL) AS open_sessions
		FROM attendances
		WHERE ($2::uuid IS NULL OR employee_id = $2)
	`

	var counts dashboard.AttendanceCounts
	if err := q.QueryRow(ctx, query, dayStart, employeeID).Scan(&counts.CheckedIn, &counts.Open); err != nil {
		return dashboard.AttendanceCounts{}, fmt.Errorf("failed to get attendance counts: %w", err)
	}
	return counts, nil
}

// CountPendingLeaves returns the number of leave requests awaiting a decision
func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context, employeeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE status = 'pending' AND ($1::uuid IS NULL OR employee_id = $1)
	`

	var n int64
	if err := q.QueryRow(ctx, query, employeeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return n, nil
}
