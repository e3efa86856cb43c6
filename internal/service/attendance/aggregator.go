package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

// DayGroup holds the records of one employee on one local calendar day.
type DayGroup struct {
	EmployeeID string
	DateKey    string
	Records    []attendance.Attendance
}

// EmployeeSummary is the per-employee roll-up shown on the attendance board.
type EmployeeSummary struct {
	EmployeeID     string
	EmployeeName   *string
	Latest         attendance.Attendance
	CheckedInToday bool
	OpenSession    *attendance.Attendance
	ActiveBreak    *attendance.Break
	Worked         time.Duration
	Breaks         time.Duration
	RecordCount    int
}

// SortByCheckInDesc returns a copy of records ordered most recent check-in first.
func SortByCheckInDesc(records []attendance.Attendance) []attendance.Attendance {
	sorted := make([]attendance.Attendance, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckIn.After(sorted[j].CheckIn)
	})
	return sorted
}

// GroupByEmployee buckets records per employee, each bucket most recent first.
func GroupByEmployee(records []attendance.Attendance) map[string][]attendance.Attendance {
	grouped := make(map[string][]attendance.Attendance)
	for _, rec := range SortByCheckInDesc(records) {
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}
	return grouped
}

// GroupByEmployeeDate buckets records per employee and local date key.
// Groups are ordered by date descending, then by employee ID. Records
// without a usable check-in have no date and are left out.
func GroupByEmployeeDate(records []attendance.Attendance) []DayGroup {
	index := make(map[[2]string]int)
	var groups []DayGroup

	for _, rec := range SortByCheckInDesc(records) {
		key := timeofday.DateKey(rec.CheckIn)
		if key == "" {
			continue
		}
		k := [2]string{rec.EmployeeID, key}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, DayGroup{EmployeeID: rec.EmployeeID, DateKey: key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].DateKey != groups[j].DateKey {
			return groups[i].DateKey > groups[j].DateKey
		}
		return groups[i].EmployeeID < groups[j].EmployeeID
	})
	return groups
}

// LatestRecord returns the employee's most recent record by check-in.
func LatestRecord(records []attendance.Attendance, employeeID string) (attendance.Attendance, bool) {
	var latest attendance.Attendance
	found := false
	for _, rec := range records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if !found || rec.CheckIn.After(latest.CheckIn) {
			latest = rec
			found = true
		}
	}
	return latest, found
}

// ActiveSession returns the employee's most recent open record.
func ActiveSession(records []attendance.Attendance, employeeID string) (attendance.Attendance, bool) {
	var active attendance.Attendance
	found := false
	for _, rec := range records {
		if rec.EmployeeID != employeeID || !rec.IsOpen() {
			continue
		}
		if !found || rec.CheckIn.After(active.CheckIn) {
			active = rec
			found = true
		}
	}
	return active, found
}

// ActiveBreak returns the break of rec that has not ended.
func ActiveBreak(rec attendance.Attendance) (attendance.Break, bool) {
	for _, b := range rec.Breaks {
		if b.IsActive() {
			return b, true
		}
	}
	return attendance.Break{}, false
}

// BreakDuration sums every break, running ones up to now. Intervals with
// a missing start or an end that is not after the start add nothing.
func BreakDuration(breaks []attendance.Break, now time.Time) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		end := now
		if b.BreakEnd != nil {
			end = *b.BreakEnd
		}
		if b.BreakStart.IsZero() || end.IsZero() || !end.After(b.BreakStart) {
			continue
		}
		total += end.Sub(b.BreakStart)
	}
	return total
}

// WorkedDuration is the closed session length minus breaks, never negative.
// Open or malformed sessions have not worked anything yet.
func WorkedDuration(rec attendance.Attendance, now time.Time) time.Duration {
	if rec.CheckOut == nil || rec.CheckIn.IsZero() || !rec.CheckOut.After(rec.CheckIn) {
		return 0
	}
	worked := rec.CheckOut.Sub(rec.CheckIn) - BreakDuration(rec.Breaks, now)
	if worked < 0 {
		return 0
	}
	return worked
}

// TotalWorked sums WorkedDuration over records.
func TotalWorked(records []attendance.Attendance, now time.Time) time.Duration {
	var total time.Duration
	for _, rec := range records {
		total += WorkedDuration(rec, now)
	}
	return total
}

// FormatWorkedHours renders worked hours with two decimals, or "-" while open.
func FormatWorkedHours(rec attendance.Attendance, now time.Time) string {
	if rec.CheckOut == nil || rec.CheckIn.IsZero() || !rec.CheckOut.After(rec.CheckIn) {
		return "-"
	}
	return timeofday.FormatHours(WorkedDuration(rec, now))
}

// ApplyFilter keeps records matching the employee and the inclusive local
// date range. Swapped bounds select the same records as ordered ones.
func ApplyFilter(records []attendance.Attendance, f attendance.Filter) []attendance.Attendance {
	from, to := attendance.NormalizeRange(f.From, f.To)
	byDate := from != "" || to != ""

	var out []attendance.Attendance
	for _, rec := range records {
		if f.EmployeeID != "" && rec.EmployeeID != f.EmployeeID {
			continue
		}
		if byDate {
			key := timeofday.DateKey(rec.CheckIn)
			if key == "" {
				continue
			}
			if from != "" && key < from {
				continue
			}
			if to != "" && key > to {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// CheckedInToday reports whether the employee has any record dated today,
// whether or not it is still open.
func CheckedInToday(records []attendance.Attendance, employeeID string, now time.Time) bool {
	today := timeofday.DateKey(now)
	for _, rec := range records {
		if rec.EmployeeID == employeeID && timeofday.DateKey(rec.CheckIn) == today {
			return true
		}
	}
	return false
}

// Summarize rolls records up per employee and ranks the rows by latest
// check-in, most recent first.
func Summarize(records []attendance.Attendance, now time.Time) []EmployeeSummary {
	grouped := GroupByEmployee(records)

	rows := make([]EmployeeSummary, 0, len(grouped))
	for employeeID, list := range grouped {
		row := EmployeeSummary{
			EmployeeID:     employeeID,
			Latest:         list[0],
			CheckedInToday: CheckedInToday(list, employeeID, now),
			RecordCount:    len(list),
		}
		for _, rec := range list {
			if row.EmployeeName == nil && rec.EmployeeName != nil {
				row.EmployeeName = rec.EmployeeName
			}
			row.Worked += WorkedDuration(rec, now)
			row.Breaks += BreakDuration(rec.Breaks, now)
		}
		if open, ok := ActiveSession(list, employeeID); ok {
			row.OpenSession = &open
			if b, ok := ActiveBreak(open); ok {
				row.ActiveBreak = &b
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		li, lj := rows[i].Latest.CheckIn, rows[j].Latest.CheckIn
		if !li.Equal(lj) {
			return li.After(lj)
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows
}

// DisplayName returns the joined employee name or a short ID placeholder.
func DisplayName(employeeID string, name *string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return strings.TrimSpace(*name)
	}
	short := employeeID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Employee " + short
}
