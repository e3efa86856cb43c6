package attendance

import (
	"time"
)

// MaxShiftHours caps how long a session may stay open before it is closed
// at check-in plus this many hours.
const MaxShiftHours = 14

type Attendance struct {
	ID         string
	EmployeeID string
	CheckIn    time.Time
	CheckOut   *time.Time
	Breaks     []Break
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

// IsOpen reports whether the session has no check-out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// ShiftCap is the latest moment the session may be closed at.
func (a Attendance) ShiftCap() time.Time {
	return a.CheckIn.Add(MaxShiftHours * time.Hour)
}

// Expired reports whether an open session ran past the shift cap at now.
func (a Attendance) Expired(now time.Time) bool {
	return a.IsOpen() && now.After(a.ShiftCap())
}

type Break struct {
	ID           string
	AttendanceID string
	BreakStart   time.Time
	BreakEnd     *time.Time
	CreatedAt    time.Time
}

// IsActive reports whether the break has not ended.
func (b Break) IsActive() bool {
	return b.BreakEnd == nil
}

// Overlaps reports whether [start, end) intersects a closed break.
func (b Break) Overlaps(start, end time.Time) bool {
	if b.BreakEnd == nil {
		return false
	}
	return start.Before(*b.BreakEnd) && end.After(b.BreakStart)
}
