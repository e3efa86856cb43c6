package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrOpenAttendanceExists = errors.New("open attendance exists")
	ErrAlreadyCheckedIn     = errors.New("already checked in for this day")
	ErrCheckInInFuture      = errors.New("checkInAt cannot be in the future")

	// Check-out errors
	ErrOpenAttendanceNotFound = errors.New("open attendance not found")
	ErrAlreadyCheckedOut      = errors.New("already checked out")
	ErrCheckOutInFuture       = errors.New("checkOutAt cannot be in the future")
	ErrCheckOutBeforeCheckIn  = errors.New("checkOutAt cannot be before checkIn")

	// Break errors
	ErrBreakAlreadyActive   = errors.New("break already active")
	ErrNoActiveBreak        = errors.New("no active break")
	ErrBreakEndBeforeStart  = errors.New("breakEndAt must be after breakStartAt")
	ErrBreakBeforeCheckIn   = errors.New("break cannot start before check-in")
	ErrBreakAfterShiftEnd   = errors.New("break cannot end after shift end")
	ErrActiveBreakExists    = errors.New("active break exists, end it first")
	ErrBreakOverlaps        = errors.New("break overlaps existing break")
	ErrInvalidTimeOverride  = errors.New("invalid time format")
	ErrEmployeeIDRequired   = errors.New("employeeId required")
	ErrAttendanceIDRequired = errors.New("attendanceId required")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrForbidden          = errors.New("forbidden to access this attendance record")
)
