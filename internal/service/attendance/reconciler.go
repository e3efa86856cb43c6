package attendance

import (
	"strings"
	"time"
	"unicode"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

// ManualEntry is a time of day typed by a manager, e.g. "10:30" + PM.
type ManualEntry struct {
	Time   string
	Period timeofday.Period
}

// ManualBreakEntry is a manager-entered break. Empty fields take the
// current time for the start and fifteen minutes later for the end.
type ManualBreakEntry struct {
	Start ManualEntry
	End   ManualEntry
}

// ResolveAnchor picks the timestamp whose calendar date a manual entry is
// placed on: the selected record, else the employee's latest record,
// else now.
func ResolveAnchor(selected *attendance.Attendance, employeeID string, records []attendance.Attendance, now time.Time) time.Time {
	if selected != nil && !selected.CheckIn.IsZero() {
		return selected.CheckIn
	}
	if employeeID != "" {
		if latest, ok := LatestRecord(records, employeeID); ok && !latest.CheckIn.IsZero() {
			return latest.CheckIn
		}
	}
	return now
}

// CoerceInput normalises raw keystrokes into "hh:mm" shape: digits only,
// at most four, with a colon after the second.
func CoerceInput(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if digits.Len() == 4 {
			break
		}
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) <= 2 {
		return d
	}
	return d[:2] + ":" + d[2:]
}

// Reconcile places a manual entry on the anchor's local date. An empty
// entry falls back to the current time of day.
func Reconcile(anchor time.Time, entry ManualEntry, now time.Time) (time.Time, error) {
	hhmm, period := entry.Time, entry.Period
	if strings.TrimSpace(hhmm) == "" {
		hhmm, period = timeofday.CurrentParts(now)
	}
	return timeofday.Combine(anchor, hhmm, period)
}

// ReconcileBreak resolves both ends of a manual break on the anchor date.
func ReconcileBreak(anchor time.Time, entry ManualBreakEntry, now time.Time) (time.Time, time.Time, error) {
	start, err := Reconcile(anchor, entry.Start, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	endEntry := entry.End
	if strings.TrimSpace(endEntry.Time) == "" {
		endEntry.Time, endEntry.Period = timeofday.OffsetParts(now, timeofday.DefaultBreakMinutes)
	}
	end, err := timeofday.Combine(anchor, endEntry.Time, endEntry.Period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// NewManualBreakRequest builds the request body for a reconciled manual break.
func NewManualBreakRequest(attendanceID string, start, end time.Time) attendance.ManualBreakRequest {
	return attendance.ManualBreakRequest{
		AttendanceID: attendanceID,
		BreakStartAt: start.Format(time.RFC3339),
		BreakEndAt:   end.Format(time.RFC3339),
	}
}
