package apiclient

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

// Records turns wire records into domain values so local date keys and
// durations are computed on this side of the connection.
func Records(in []attendance.AttendanceResponse) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0, len(in))
	for _, r := range in {
		rec, err := Record(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func Record(r attendance.AttendanceResponse) (attendance.Attendance, error) {
	checkIn, err := timeofday.ParseAnchor(r.CheckIn)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("record %s check-in: %w", r.ID, err)
	}
	rec := attendance.Attendance{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		CheckIn:      checkIn,
	}
	if rec.CheckOut, err = optionalTime(r.CheckOut); err != nil {
		return attendance.Attendance{}, fmt.Errorf("record %s check-out: %w", r.ID, err)
	}

	for _, b := range r.Breaks {
		start, err := timeofday.ParseAnchor(b.BreakStart)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("break %s start: %w", b.ID, err)
		}
		end, err := optionalTime(b.BreakEnd)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("break %s end: %w", b.ID, err)
		}
		rec.Breaks = append(rec.Breaks, attendance.Break{
			ID:           b.ID,
			AttendanceID: r.ID,
			BreakStart:   start,
			BreakEnd:     end,
		})
	}
	return rec, nil
}

func optionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := timeofday.ParseAnchor(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
