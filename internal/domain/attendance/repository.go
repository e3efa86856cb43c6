package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Records returned by read methods carry their breaks ordered by creation.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenSession retrieves the most recent open record of an employee
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// CountCheckInsBetween counts check-ins of an employee within [from, to).
	// Used to prevent a second self check-in on the same day.
	CountCheckInsBetween(ctx context.Context, employeeID string, from, to time.Time) (int64, error)

	// Close stores the check-out of an attendance record
	Close(ctx context.Context, id string, checkOut time.Time) error

	// List retrieves attendance records, most recent check-in first
	List(ctx context.Context, filter Filter) ([]Attendance, error)

	// ListStaleOpen returns open records that checked in at or before cutoff
	ListStaleOpen(ctx context.Context, cutoff time.Time, employeeID *string) ([]Attendance, error)

	CountOpen(ctx context.Context) (int64, error)

	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
}

// BreakRepository defines data access methods for break intervals.
type BreakRepository interface {
	Create(ctx context.Context, b Break) (Break, error)

	// GetActive retrieves the latest break of an attendance without an end
	GetActive(ctx context.Context, attendanceID string) (Break, error)

	// End sets the end of a single break
	End(ctx context.Context, id string, breakEnd time.Time) error

	// CloseActive ends every open break of an attendance at the given moment
	CloseActive(ctx context.Context, attendanceID string, at time.Time) error

	// ClampEnds pulls break ends that lie after the given moment back to it
	ClampEnds(ctx context.Context, attendanceID string, at time.Time) error
}
