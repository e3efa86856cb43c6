package attendance_test

import (
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	attendanceService "github.com/cmlabs-hris/workflow-erp/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestMain(m *testing.M) {
	timeofday.SetLocation(wib)
	os.Exit(m.Run())
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, wib)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func closedBreak(start, end time.Time) attendance.Break {
	return attendance.Break{BreakStart: start, BreakEnd: ptr(end)}
}

func TestWorkedDuration(t *testing.T) {
	now := at(11, 8, 0)

	tests := []struct {
		name string
		rec  attendance.Attendance
		want time.Duration
	}{
		{
			name: "full day with lunch",
			rec: attendance.Attendance{
				CheckIn:  at(10, 9, 0),
				CheckOut: ptr(at(10, 17, 30)),
				Breaks:   []attendance.Break{closedBreak(at(10, 12, 0), at(10, 12, 30))},
			},
			want: 8 * time.Hour,
		},
		{
			name: "open session",
			rec:  attendance.Attendance{CheckIn: at(10, 9, 0)},
			want: 0,
		},
		{
			name: "check-out before check-in",
			rec: attendance.Attendance{
				CheckIn:  at(10, 9, 0),
				CheckOut: ptr(at(10, 8, 0)),
			},
			want: 0,
		},
		{
			name: "breaks longer than session",
			rec: attendance.Attendance{
				CheckIn:  at(10, 9, 0),
				CheckOut: ptr(at(10, 10, 0)),
				Breaks:   []attendance.Break{closedBreak(at(10, 8, 0), at(10, 11, 0))},
			},
			want: 0,
		},
		{
			name: "missing check-in",
			rec:  attendance.Attendance{CheckOut: ptr(at(10, 10, 0))},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attendanceService.WorkedDuration(tt.rec, now)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, time.Duration(0))
		})
	}

	rec := tests[0].rec
	assert.Equal(t, "8h 0m", timeofday.FormatDuration(attendanceService.WorkedDuration(rec, now)))
	assert.Equal(t, "8.00", attendanceService.FormatWorkedHours(rec, now))
	assert.Equal(t, "-", attendanceService.FormatWorkedHours(tests[1].rec, now))
}

func TestBreakDuration_NeverNegative(t *testing.T) {
	now := at(10, 13, 0)

	breaks := []attendance.Break{
		closedBreak(at(10, 12, 0), at(10, 12, 30)),
		closedBreak(at(10, 15, 0), at(10, 14, 0)),
		{BreakStart: time.Time{}, BreakEnd: ptr(at(10, 12, 0))},
		{BreakStart: at(10, 12, 45)},
	}

	got := attendanceService.BreakDuration(breaks, now)

	assert.Equal(t, 45*time.Minute, got)
	assert.Equal(t, time.Duration(0), attendanceService.BreakDuration(nil, now))
}

func TestApplyFilter(t *testing.T) {
	records := []attendance.Attendance{
		{ID: "a", EmployeeID: "e1", CheckIn: at(8, 9, 0)},
		{ID: "b", EmployeeID: "e1", CheckIn: at(10, 9, 0)},
		{ID: "c", EmployeeID: "e2", CheckIn: at(12, 9, 0)},
		{ID: "d", EmployeeID: "e2"},
	}

	ids := func(recs []attendance.Attendance) []string {
		out := []string{}
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("inclusive range", func(t *testing.T) {
		got := attendanceService.ApplyFilter(records, attendance.Filter{From: "2024-03-10", To: "2024-03-12"})
		assert.Equal(t, []string{"b", "c"}, ids(got))
	})

	t.Run("swapped bounds select the same records", func(t *testing.T) {
		ordered := attendanceService.ApplyFilter(records, attendance.Filter{From: "2024-03-08", To: "2024-03-10"})
		swapped := attendanceService.ApplyFilter(records, attendance.Filter{From: "2024-03-10", To: "2024-03-08"})
		assert.Equal(t, ids(ordered), ids(swapped))
		assert.Equal(t, []string{"a", "b"}, ids(swapped))
	})

	t.Run("employee only keeps undated records", func(t *testing.T) {
		got := attendanceService.ApplyFilter(records, attendance.Filter{EmployeeID: "e2"})
		assert.Equal(t, []string{"c", "d"}, ids(got))
	})

	t.Run("open-ended lower bound", func(t *testing.T) {
		got := attendanceService.ApplyFilter(records, attendance.Filter{From: "2024-03-10"})
		assert.Equal(t, []string{"b", "c"}, ids(got))
	})
}

func TestGroupByEmployeeDate(t *testing.T) {
	records := []attendance.Attendance{
		{ID: "1", EmployeeID: "e2", CheckIn: at(10, 8, 0)},
		{ID: "2", EmployeeID: "e1", CheckIn: at(10, 9, 0)},
		{ID: "3", EmployeeID: "e1", CheckIn: at(10, 18, 0)},
		{ID: "4", EmployeeID: "e1", CheckIn: at(11, 9, 0)},
		{ID: "5", EmployeeID: "e1"},
	}

	groups := attendanceService.GroupByEmployeeDate(records)

	require.Len(t, groups, 3)
	assert.Equal(t, "e1", groups[0].EmployeeID)
	assert.Equal(t, "2024-03-11", groups[0].DateKey)
	assert.Equal(t, "e1", groups[1].EmployeeID)
	assert.Equal(t, "2024-03-10", groups[1].DateKey)
	assert.Equal(t, "e2", groups[2].EmployeeID)

	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, "3", groups[1].Records[0].ID)
	assert.Equal(t, "2", groups[1].Records[1].ID)
}

func TestActiveSession(t *testing.T) {
	records := []attendance.Attendance{
		{ID: "a1", EmployeeID: "e1", CheckIn: at(9, 8, 0)},
		{ID: "a2", EmployeeID: "e1", CheckIn: at(10, 8, 0)},
		{ID: "a3", EmployeeID: "e1", CheckIn: at(11, 8, 0), CheckOut: ptr(at(11, 17, 0))},
		{ID: "b1", EmployeeID: "e2", CheckIn: at(10, 9, 0), CheckOut: ptr(at(10, 17, 0))},
	}

	tests := []struct {
		name       string
		employeeID string
		wantID     string
		wantFound  bool
	}{
		{name: "most recent of two open records", employeeID: "e1", wantID: "a2", wantFound: true},
		{name: "only closed records", employeeID: "e2"},
		{name: "unknown employee", employeeID: "e3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := attendanceService.ActiveSession(records, tt.employeeID)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestGroupByEmployee(t *testing.T) {
	records := []attendance.Attendance{
		{ID: "a1", EmployeeID: "e1", CheckIn: at(9, 8, 0)},
		{ID: "b1", EmployeeID: "e2", CheckIn: at(10, 9, 0)},
		{ID: "a3", EmployeeID: "e1", CheckIn: at(11, 8, 0)},
		{ID: "a2", EmployeeID: "e1", CheckIn: at(10, 8, 0)},
	}

	tests := []struct {
		name       string
		employeeID string
		want       []string
	}{
		{name: "newest check-in first", employeeID: "e1", want: []string{"a3", "a2", "a1"}},
		{name: "single record", employeeID: "e2", want: []string{"b1"}},
		{name: "absent employee", employeeID: "e3"},
	}
	grouped := attendanceService.GroupByEmployee(records)
	assert.Len(t, grouped, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, rec := range grouped[tt.employeeID] {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSummarize(t *testing.T) {
	now := at(11, 10, 0)
	name := "Budi Santoso"

	records := []attendance.Attendance{
		{
			ID: "old", EmployeeID: "e1", EmployeeName: &name,
			CheckIn: at(10, 9, 0), CheckOut: ptr(at(10, 17, 0)),
		},
		{
			ID: "open", EmployeeID: "e1", CheckIn: at(11, 8, 0),
			Breaks: []attendance.Break{{ID: "br", BreakStart: at(11, 9, 30)}},
		},
		{
			ID: "other", EmployeeID: "e2",
			CheckIn: at(10, 7, 0), CheckOut: ptr(at(10, 15, 0)),
		},
	}

	rows := attendanceService.Summarize(records, now)

	require.Len(t, rows, 2)
	first := rows[0]
	assert.Equal(t, "e1", first.EmployeeID)
	assert.Equal(t, "open", first.Latest.ID)
	assert.True(t, first.CheckedInToday)
	require.NotNil(t, first.OpenSession)
	assert.Equal(t, "open", first.OpenSession.ID)
	require.NotNil(t, first.ActiveBreak)
	assert.Equal(t, "br", first.ActiveBreak.ID)
	assert.Equal(t, 8*time.Hour, first.Worked)
	assert.Equal(t, 30*time.Minute, first.Breaks)
	assert.Equal(t, 2, first.RecordCount)
	require.NotNil(t, first.EmployeeName)
	assert.Equal(t, name, *first.EmployeeName)

	second := rows[1]
	assert.Equal(t, "e2", second.EmployeeID)
	assert.False(t, second.CheckedInToday)
	assert.Nil(t, second.OpenSession)
}

func TestDisplayName(t *testing.T) {
	name := "  Siti  "
	blank := " "

	assert.Equal(t, "Siti", attendanceService.DisplayName("abc", &name))
	assert.Equal(t, "Employee 12345678", attendanceService.DisplayName("1234567890ab", &blank))
	assert.Equal(t, "Employee e1", attendanceService.DisplayName("e1", nil))
}
