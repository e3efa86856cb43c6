package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/dashboard"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	dayStart   time.Time
	scopedTo   []*string
	invoiceErr error
}

func (f *fakeRepo) GetEmployeeCounts(context.Context) (dashboard.EmployeeCounts, error) {
	return dashboard.EmployeeCounts{Total: 12, Managers: 2}, nil
}

func (f *fakeRepo) GetInvoiceCounts(context.Context) (dashboard.InvoiceCounts, error) {
	return dashboard.InvoiceCounts{Total: 4, Revenue: decimal.RequireFromString("2500000.5")}, f.invoiceErr
}

func (f *fakeRepo) GetAttendanceCounts(_ context.Context, dayStart time.Time, employeeID *string) (dashboard.AttendanceCounts, error) {
	f.dayStart = dayStart
	if employeeID != nil {
		return dashboard.AttendanceCounts{CheckedIn: 1, Open: 1}, nil
	}
	return dashboard.AttendanceCounts{CheckedIn: 9, Open: 3}, nil
}

func (f *fakeRepo) CountPendingLeaves(_ context.Context, employeeID *string) (int64, error) {
	if employeeID != nil {
		return 1, nil
	}
	return 5, nil
}

func newTestService(repo dashboard.DashboardRepository) *DashboardServiceImpl {
	svc := NewDashboardService(repo).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestGetDashboard(t *testing.T) {
	tests := []struct {
		name        string
		role        user.Role
		wantScope   string
		wantOpen    int64
		wantPending int64
	}{
		{"manager sees company", user.RoleManager, "company", 3, 5},
		{"admin sees company", user.RoleAdmin, "company", 3, 5},
		{"employee sees self", user.RoleEmployee, "self", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			ctx := jwt.NewContext(context.Background(), user.Actor{UserID: "u1", EmployeeID: "e1", Role: tt.role})

			got, err := newTestService(repo).GetDashboard(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.wantScope, got.Scope)
			assert.Equal(t, tt.wantOpen, got.OpenSessions)
			assert.Equal(t, tt.wantPending, got.PendingLeaves)
			assert.Equal(t, int64(12), got.Employees)
			assert.Equal(t, "2500000.50", got.Revenue)
			assert.Equal(t, "IDR", got.Currency)
			assert.Equal(t, 0, repo.dayStart.Hour())
			assert.Equal(t, 0, repo.dayStart.Minute())
		})
	}
}

func TestGetDashboard_Errors(t *testing.T) {
	repo := &fakeRepo{invoiceErr: errors.New("db down")}
	ctx := jwt.NewContext(context.Background(), user.Actor{UserID: "u1", Role: user.RoleAdmin})

	_, err := newTestService(repo).GetDashboard(ctx)
	assert.EqualError(t, err, "db down")

	_, err = newTestService(&fakeRepo{}).GetDashboard(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}
