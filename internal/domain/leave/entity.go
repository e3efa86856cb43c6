package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeCasual LeaveType = "casual"
)

// LeaveTypes lists the known leave types in display order.
var LeaveTypes = []LeaveType{LeaveTypeSick, LeaveTypeCasual}

func ParseLeaveType(s string) (LeaveType, bool) {
	switch LeaveType(s) {
	case LeaveTypeSick, LeaveTypeCasual:
		return LeaveType(s), true
	}
	return "", false
}

// Policy is the annual entitlement of one leave type.
type Policy struct {
	ID        string
	Year      int
	Type      LeaveType
	Total     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance is an employee's entitlement and consumption for one type and year.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	Type       LeaveType
	Total      float64
	Used       float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

// Remaining is total minus used, never negative.
func (b Balance) Remaining() float64 {
	if r := b.Total - b.Used; r > 0 {
		return r
	}
	return 0
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func ParseStatus(s string) (RequestStatus, bool) {
	switch RequestStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return RequestStatus(s), true
	}
	return "", false
}

type Request struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Status     RequestStatus
	Reason     *string
	ApproverID *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

// Overlaps reports whether the request covers any day of [start, end].
func (r Request) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// CountDays returns the inclusive number of calendar days from start to end.
func CountDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
