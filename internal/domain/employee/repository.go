package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	// List returns employees ordered by creation, newest first
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// ListIDs returns the IDs of every employee, used when recomputing balances
	ListIDs(ctx context.Context) ([]string, error)

	Count(ctx context.Context) (int64, error)
}
