package leave

import (
	"context"
	"time"
)

// PolicyRepository - interface for leave_policies table
type PolicyRepository interface {
	GetByYear(ctx context.Context, year int) ([]Policy, error)
	GetByYearType(ctx context.Context, year int, leaveType LeaveType) (Policy, error)
	Upsert(ctx context.Context, policy Policy) (Policy, error)
}

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	Get(ctx context.Context, employeeID string, year int, leaveType LeaveType) (Balance, error)
	Create(ctx context.Context, balance Balance) (Balance, error)
	UpdateTotal(ctx context.Context, id string, total float64) error
	UpdateUsed(ctx context.Context, id string, used float64) error
	ListByYear(ctx context.Context, year int, employeeID *string) ([]Balance, error)
}

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	Update(ctx context.Context, request Request) (Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID *string, approvedAt *time.Time) error
	Delete(ctx context.Context, id string) error

	// ExistsOverlapping reports a non-rejected request of the employee covering any day of [start, end]
	ExistsOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)

	CountPending(ctx context.Context) (int64, error)
}
