package leave_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	leaveService "github.com/cmlabs-hris/workflow-erp/internal/service/leave"
	"github.com/stretchr/testify/assert"
)

func request(employeeID string, leaveType leave.LeaveType, status leave.RequestStatus, start time.Time, days int) leave.Request {
	return leave.Request{
		EmployeeID: employeeID,
		Type:       leaveType,
		Status:     status,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Days:       days,
	}
}

func useLocation(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := timeofday.Location()
	timeofday.SetLocation(loc)
	t.Cleanup(func() { timeofday.SetLocation(prev) })
}

func TestUsedDays(t *testing.T) {
	useLocation(t, time.UTC)
	requests := []leave.Request{
		request("e1", leave.LeaveTypeSick, leave.StatusApproved, *date(2024, time.February, 1), 2),
		request("e1", leave.LeaveTypeSick, leave.StatusApproved, *date(2024, time.May, 6), 1),
		request("e1", leave.LeaveTypeSick, leave.StatusPending, *date(2024, time.June, 3), 4),
		request("e1", leave.LeaveTypeSick, leave.StatusRejected, *date(2024, time.June, 10), 4),
		request("e1", leave.LeaveTypeCasual, leave.StatusApproved, *date(2024, time.July, 1), 3),
		request("e1", leave.LeaveTypeSick, leave.StatusApproved, *date(2023, time.December, 28), 2),
	}

	assert.Equal(t, float64(3), leaveService.UsedDays(requests, leave.LeaveTypeSick, 2024))
	assert.Equal(t, float64(3), leaveService.UsedDays(requests, leave.LeaveTypeCasual, 2024))
	assert.Equal(t, float64(2), leaveService.UsedDays(requests, leave.LeaveTypeSick, 2023))
	assert.Equal(t, float64(0), leaveService.UsedDays(nil, leave.LeaveTypeSick, 2024))
}

func TestUsedDays_CountsLocalYear(t *testing.T) {
	useLocation(t, time.FixedZone("UTC-5", -5*3600))

	// Dec 31 at 23:00 local is already Jan 1 in UTC.
	newYearsEve := time.Date(2025, time.January, 1, 4, 0, 0, 0, time.UTC)
	requests := []leave.Request{
		request("e1", leave.LeaveTypeSick, leave.StatusApproved, newYearsEve, 1),
	}

	assert.Equal(t, float64(1), leaveService.UsedDays(requests, leave.LeaveTypeSick, 2024))
	assert.Equal(t, float64(0), leaveService.UsedDays(requests, leave.LeaveTypeSick, 2025))
}

func TestCompute(t *testing.T) {
	useLocation(t, time.UTC)

	requests := []leave.Request{
		request("e1", leave.LeaveTypeCasual, leave.StatusApproved, *date(2024, time.August, 1), 2),
		request("e2", leave.LeaveTypeCasual, leave.StatusApproved, *date(2024, time.August, 1), 5),
	}

	got := leaveService.Compute(7, "e1", date(2024, time.July, 1), requests, leave.LeaveTypeCasual, 2024)

	assert.Equal(t, "e1", got.EmployeeID)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 3.5, got.Total)
	assert.Equal(t, float64(2), got.Used)
	assert.Equal(t, 1.5, got.Remaining())

	over := leaveService.Compute(7, "e2", date(2024, time.July, 1), requests, leave.LeaveTypeCasual, 2024)
	assert.Equal(t, float64(0), over.Remaining())
}

func TestResolve(t *testing.T) {
	computed := leave.Balance{Type: leave.LeaveTypeSick, Total: 10, Used: 1}
	stored := leave.Balance{Type: leave.LeaveTypeSick, Total: 8.33, Used: 3}

	assert.Equal(t, stored, leaveService.Resolve(&stored, computed))
	assert.Equal(t, computed, leaveService.Resolve(nil, computed))
}

func TestDisplayAndSummaryLine(t *testing.T) {
	sick := leave.Balance{Type: leave.LeaveTypeSick, Total: 8.33, Used: 2}
	casual := leave.Balance{Type: leave.LeaveTypeCasual, Total: 3.5, Used: 0.5}

	d := leaveService.Display(sick)
	assert.Equal(t, 8, d.Total)
	assert.Equal(t, 2, d.Used)
	assert.Equal(t, 6, d.Remaining)

	line := leaveService.SummaryLine([]leave.Balance{casual, sick})
	assert.Equal(t, "sick: 8 total, 2 used, 6 left | casual: 3 total, 0 used, 3 left", line)

	assert.Equal(t, "", leaveService.SummaryLine(nil))
}

func TestEffective(t *testing.T) {
	useLocation(t, time.UTC)
	requests := []leave.Request{
		request("e1", leave.LeaveTypeCasual, leave.StatusApproved, *date(2024, time.August, 1), 2),
		request("e1", leave.LeaveTypeSick, leave.StatusApproved, *date(2024, time.August, 5), 4),
	}
	storedSick := leave.Balance{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeSick, Total: 10, Used: 2}

	tests := []struct {
		name     string
		stored   []leave.Balance
		totals   map[leave.LeaveType]float64
		employee string
		hiredAt  *time.Time
		want     []leave.Balance
	}{
		{
			name:     "stored sick, computed casual from default",
			stored:   []leave.Balance{storedSick},
			employee: "e1",
			hiredAt:  date(2024, time.July, 1),
			want: []leave.Balance{
				storedSick,
				{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeCasual, Total: 3.5, Used: 2},
			},
		},
		{
			name:     "policy totals replace defaults",
			totals:   map[leave.LeaveType]float64{leave.LeaveTypeSick: 12, leave.LeaveTypeCasual: 6},
			employee: "e1",
			want: []leave.Balance{
				{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeSick, Total: 12, Used: 4},
				{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeCasual, Total: 6, Used: 2},
			},
		},
		{
			name:     "stored balances of others and other years are ignored",
			stored:   []leave.Balance{{EmployeeID: "e2", Year: 2024, Type: leave.LeaveTypeSick, Total: 1}, {EmployeeID: "e1", Year: 2023, Type: leave.LeaveTypeSick, Total: 1}},
			employee: "e1",
			want: []leave.Balance{
				{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeSick, Total: 10, Used: 4},
				{EmployeeID: "e1", Year: 2024, Type: leave.LeaveTypeCasual, Total: 7, Used: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leaveService.Effective(tt.stored, tt.totals, tt.employee, tt.hiredAt, requests, 2024)
			assert.Equal(t, tt.want, got)
		})
	}
}
