package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a session for the caller, or for any employee when an admin/manager asks
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes an open session, capping it at the maximum shift length
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	StartBreak(ctx context.Context, req BreakRequest) (BreakResponse, error)
	EndBreak(ctx context.Context, req BreakRequest) (BreakResponse, error)

	// AddManualBreak records a finished break entered by an admin/manager
	AddManualBreak(ctx context.Context, req ManualBreakRequest) (BreakResponse, error)

	// List returns records visible to the caller, most recent first
	List(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)

	// ListByDay returns records grouped per employee and local date
	ListByDay(ctx context.Context, req ListAttendanceRequest) ([]DayGroupResponse, error)

	// Summary returns one row per employee ranked by latest check-in
	Summary(ctx context.Context, req ListAttendanceRequest) ([]EmployeeSummaryResponse, error)

	// Timesheet renders the filtered day groups as a PDF document
	Timesheet(ctx context.Context, req ListAttendanceRequest) ([]byte, error)

	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) (DeleteByEmployeeResponse, error)

	// CloseExpired closes sessions open longer than MaxShiftHours; nil employeeID means all
	CloseExpired(ctx context.Context, employeeID *string) (int, error)
}
