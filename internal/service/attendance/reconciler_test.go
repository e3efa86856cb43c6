package attendance_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	attendanceService "github.com/cmlabs-hris/workflow-erp/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAnchor(t *testing.T) {
	now := at(11, 0, 5)
	selected := attendance.Attendance{ID: "sel", EmployeeID: "e1", CheckIn: at(9, 9, 0)}
	records := []attendance.Attendance{
		{ID: "a", EmployeeID: "e1", CheckIn: at(8, 9, 0)},
		{ID: "b", EmployeeID: "e1", CheckIn: at(10, 22, 0)},
	}

	assert.Equal(t, selected.CheckIn, attendanceService.ResolveAnchor(&selected, "e1", records, now))
	assert.Equal(t, at(10, 22, 0), attendanceService.ResolveAnchor(nil, "e1", records, now))
	assert.Equal(t, now, attendanceService.ResolveAnchor(nil, "e9", records, now))
	assert.Equal(t, now, attendanceService.ResolveAnchor(nil, "", records, now))
}

func TestReconcile_StaysOnAnchorDate(t *testing.T) {
	// A night shift that began on the 10th is edited just after midnight.
	anchor := at(10, 22, 0)
	now := at(11, 0, 5)

	got, err := attendanceService.Reconcile(anchor, attendanceService.ManualEntry{Time: "11:30", Period: timeofday.PM}, now)

	require.NoError(t, err)
	assert.Equal(t, at(10, 23, 30), got)
	assert.Equal(t, "2024-03-10", timeofday.DateKey(got))
}

func TestReconcile_EmptyUsesCurrentTime(t *testing.T) {
	anchor := at(10, 8, 0)
	now := at(12, 14, 20)

	got, err := attendanceService.Reconcile(anchor, attendanceService.ManualEntry{}, now)

	require.NoError(t, err)
	assert.Equal(t, at(10, 14, 20), got)
}

func TestReconcile_Errors(t *testing.T) {
	now := at(10, 9, 0)

	_, err := attendanceService.Reconcile(at(10, 8, 0), attendanceService.ManualEntry{Time: "25:00", Period: timeofday.AM}, now)
	assert.ErrorIs(t, err, timeofday.ErrFormat)

	_, err = attendanceService.Reconcile(time.Time{}, attendanceService.ManualEntry{Time: "09:00", Period: timeofday.AM}, now)
	assert.EqualError(t, err, "invalid attendance time")
}

func TestReconcileBreak(t *testing.T) {
	anchor := at(10, 8, 0)
	now := at(10, 11, 50)

	start, end, err := attendanceService.ReconcileBreak(anchor, attendanceService.ManualBreakEntry{}, now)

	require.NoError(t, err)
	assert.Equal(t, at(10, 11, 50), start)
	assert.Equal(t, at(10, 12, 5), end)

	start, end, err = attendanceService.ReconcileBreak(anchor, attendanceService.ManualBreakEntry{
		Start: attendanceService.ManualEntry{Time: "12:00", Period: timeofday.PM},
		End:   attendanceService.ManualEntry{Time: "12:45", Period: timeofday.PM},
	}, now)

	require.NoError(t, err)
	assert.Equal(t, at(10, 12, 0), start)
	assert.Equal(t, at(10, 12, 45), end)

	req := attendanceService.NewManualBreakRequest("att-1", start, end)
	assert.Equal(t, "att-1", req.AttendanceID)
	assert.Equal(t, "2024-03-10T12:00:00+07:00", req.BreakStartAt)
	assert.Equal(t, "2024-03-10T12:45:00+07:00", req.BreakEndAt)
}

func TestCoerceInput(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"9", "9"},
		{"09", "09"},
		{"093", "09:3"},
		{"0930", "09:30"},
		{"09:30", "09:30"},
		{"09305", "09:30"},
		{"a1b2c3d4", "12:34"},
		{"١٢٣", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, attendanceService.CoerceInput(tt.raw))
		})
	}
}
