package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrPolicyNotFound       = errors.New("leave policy not found")
	ErrInvalidLeaveType     = errors.New("leave type must be sick or casual")
	ErrInvalidDateRange     = errors.New("end_date must not be before start_date")
	ErrCrossYearRequest     = errors.New("leave request must start and end in the same year")
	ErrOverlappingRequest   = errors.New("leave request overlaps an existing request")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrNotPending           = errors.New("leave is not pending")
	ErrApprovedNotDeletable = errors.New("approved leave cannot be deleted")
	ErrForbidden            = errors.New("not allowed to access this leave request")
	ErrEmployeeNotLinked    = errors.New("user is not linked to an employee")
)
