package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
}

func parseHiredAt(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// guardManagerRecord stops managers from touching manager rows.
func guardManagerRecord(actor user.Actor, target employee.Employee) error {
	if actor.Role == user.RoleManager && target.IsManager() {
		return employee.ErrManagerRecordLocked
	}
	return nil
}

func (s *EmployeeServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (s *EmployeeServiceImpl) ensureEmailFree(ctx context.Context, email string, selfID string) error {
	existing, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return employee.ErrEmailExists
	}
	return nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Role-based access control: employees can only view their own data
	if actor.IsEmployee() && actor.EmployeeID != id {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case user.RoleEmployee:
		if actor.EmployeeID == "" {
			return []employee.EmployeeResponse{}, nil
		}
		filter.OnlyID = &actor.EmployeeID
	case user.RoleManager:
		role := employee.RoleEmployee
		filter.Role = &role
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	role, _ := employee.NormalizeRole(req.Role)
	if actor.Role == user.RoleManager && role == employee.RoleManager {
		return employee.EmployeeResponse{}, employee.ErrManagerRecordLocked
	}

	if err := s.ensureEmailFree(ctx, req.Email, ""); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      role,
		Phone:     req.Phone,
		Position:  req.Position,
		Salary:    req.Salary,
		HiredAt:   parseHiredAt(req.HiredAt),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "role", created.Role, "by", actor.UserID)
	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.getEmployee(txCtx, req.ID)
		if err != nil {
			return err
		}
		if err := guardManagerRecord(actor, emp); err != nil {
			return err
		}

		if req.Role != nil {
			role, _ := employee.NormalizeRole(*req.Role)
			if actor.Role == user.RoleManager && role == employee.RoleManager {
				return employee.ErrManagerPromotion
			}
			emp.Role = role
		}
		if req.Email != nil {
			if err := s.ensureEmailFree(txCtx, *req.Email, emp.ID); err != nil {
				return err
			}
			emp.Email = *req.Email
		}
		if req.FirstName != nil {
			emp.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			emp.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Phone != nil {
			emp.Phone = req.Phone
		}
		if req.Position != nil {
			emp.Position = req.Position
		}
		if req.Salary != nil {
			emp.Salary = req.Salary
		}
		if req.HiredAt != nil {
			emp.HiredAt = parseHiredAt(req.HiredAt)
		}

		updated, err = s.employeeRepo.Update(txCtx, emp)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		if err := s.userRepo.SyncEmployee(txCtx, updated.ID, updated.Email, updated.FullName(), user.Role(updated.Role)); err != nil {
			return fmt.Errorf("failed to sync user account: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if actor.EmployeeID == id {
		return employee.ErrCannotDeleteSelf
	}

	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := guardManagerRecord(actor, emp); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("employee deleted", "employee_id", id, "by", actor.UserID)
	return nil
}

// CreateUser implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateUser(ctx context.Context, req employee.CreateUserRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := guardManagerRecord(actor, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.userRepo.GetByEmployeeID(ctx, emp.ID); err == nil {
		return employee.EmployeeResponse{}, employee.ErrUserAlreadyLinked
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	created, err := s.createUser(ctx, emp, req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.UserID = &created.ID
	return employee.ToResponse(emp), nil
}

// UpsertUserPassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpsertUserPassword(ctx context.Context, req employee.UpsertPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if err := guardManagerRecord(actor, emp); err != nil {
		return err
	}

	existing, err := s.userRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to get user: %w", err)
		}
		_, err = s.createUser(ctx, emp, req.Password)
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, existing.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) createUser(ctx context.Context, emp employee.Employee, password string) (user.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, emp.Email); err == nil {
		return user.User{}, user.ErrUserEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        emp.Email,
		PasswordHash: string(hashed),
		Name:         emp.FullName(),
		Role:         user.Role(emp.Role),
		EmployeeID:   &emp.ID,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user account provisioned", "employee_id", emp.ID, "user_id", created.ID)
	return created, nil
}
