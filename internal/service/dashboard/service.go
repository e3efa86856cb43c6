package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/dashboard"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	repo dashboard.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// startOfDay returns local midnight of t
func startOfDay(t time.Time) time.Time {
	local := t.In(timeofday.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// GetDashboard runs each count in its own goroutine, one query apiece
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	scope := "company"
	var employeeID *string
	if actor.IsEmployee() {
		scope = "self"
		id := actor.EmployeeID
		employeeID = &id
	}

	now := s.now()
	var (
		employees  dashboard.EmployeeCounts
		invoices   dashboard.InvoiceCounts
		attendance dashboard.AttendanceCounts
		pending    int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.repo.GetEmployeeCounts(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		invoices, err = s.repo.GetInvoiceCounts(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		attendance, err = s.repo.GetAttendanceCounts(gCtx, startOfDay(now), employeeID)
		return err
	})

	g.Go(func() error {
		var err error
		pending, err = s.repo.CountPendingLeaves(gCtx, employeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		Employees:      employees.Total,
		Managers:       employees.Managers,
		Invoices:       invoices.Total,
		Revenue:        invoices.Revenue.StringFixed(2),
		Currency:       invoice.DefaultCurrency,
		CheckedInToday: attendance.CheckedIn,
		OpenSessions:   attendance.Open,
		PendingLeaves:  pending,
		Scope:          scope,
		GeneratedAt:    now.Format(time.RFC3339),
	}, nil
}
