package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// GetEmployee retrieves a single employee; employees may only read themselves
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees lists the directory as visible to the caller
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	// CreateEmployee creates a new employee (manager+ only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates an employee and syncs the linked user account
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee (manager+ only)
	DeleteEmployee(ctx context.Context, id string) error

	// CreateUser provisions a login for an employee
	CreateUser(ctx context.Context, req CreateUserRequest) (EmployeeResponse, error)

	// UpsertUserPassword sets the password of an employee's login, creating it when missing
	UpsertUserPassword(ctx context.Context, req UpsertPasswordRequest) error
}
