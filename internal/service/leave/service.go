package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	policyRepo   leave.PolicyRepository
	balanceRepo  leave.BalanceRepository
	requestRepo  leave.RequestRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	policyRepo leave.PolicyRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		policyRepo:   policyRepo,
		balanceRepo:  balanceRepo,
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// resolveEmployeeID pins employees to themselves and lets managers act for anyone.
func resolveEmployeeID(actor user.Actor, requested string) (string, error) {
	if actor.IsEmployee() || requested == "" {
		if actor.EmployeeID == "" {
			if actor.IsEmployee() {
				return "", leave.ErrEmployeeNotLinked
			}
			return "", validator.ValidationErrors{{
				Field:   "employee_id",
				Message: "employee_id is required",
			}}
		}
		return actor.EmployeeID, nil
	}
	return requested, nil
}

// policyTotal returns the configured entitlement for year, or the default.
func (s *LeaveServiceImpl) policyTotal(ctx context.Context, year int, leaveType leave.LeaveType) (float64, error) {
	policy, err := s.policyRepo.GetByYearType(ctx, year, leaveType)
	if err != nil {
		if errors.Is(err, leave.ErrPolicyNotFound) {
			return DefaultTotal(leaveType), nil
		}
		return 0, fmt.Errorf("failed to get leave policy: %w", err)
	}
	return policy.Total, nil
}

// ensureBalance creates the employee's balance for type and year when
// missing, and re-prorates it when the policy or hire date moved.
func (s *LeaveServiceImpl) ensureBalance(ctx context.Context, emp employee.Employee, leaveType leave.LeaveType, year int) (leave.Balance, error) {
	total, err := s.policyTotal(ctx, year, leaveType)
	if err != nil {
		return leave.Balance{}, err
	}
	prorated := ProratedTotal(total, emp.HiredAt, year)

	balance, err := s.balanceRepo.Get(ctx, emp.ID, year, leaveType)
	if err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
		}
		created, err := s.balanceRepo.Create(ctx, leave.Balance{
			EmployeeID: emp.ID,
			Year:       year,
			Type:       leaveType,
			Total:      prorated,
			Used:       0,
		})
		if err != nil {
			return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
		}
		return created, nil
	}

	if balance.Total != prorated {
		if err := s.balanceRepo.UpdateTotal(ctx, balance.ID, prorated); err != nil {
			return leave.Balance{}, fmt.Errorf("failed to update leave balance: %w", err)
		}
		balance.Total = prorated
	}
	return balance, nil
}

func (s *LeaveServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// checkAvailable fails when the balance cannot cover days more.
func (s *LeaveServiceImpl) checkAvailable(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days int) error {
	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	balance, err := s.ensureBalance(ctx, emp, leaveType, year)
	if err != nil {
		return err
	}
	if balance.Total-balance.Used < float64(days) {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	leaveType, start, end, err := req.Validate()
	if err != nil {
		return leave.RequestResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	employeeID, err := resolveEmployeeID(actor, req.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	days := leave.CountDays(start, end)

	var created leave.Request
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		overlap, err := s.requestRepo.ExistsOverlapping(txCtx, employeeID, start, end, nil)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		if err := s.checkAvailable(txCtx, employeeID, leaveType, start.Year(), days); err != nil {
			return err
		}

		created, err = s.requestRepo.Create(txCtx, leave.Request{
			EmployeeID: employeeID,
			Type:       leaveType,
			StartDate:  start,
			EndDate:    end,
			Days:       days,
			Status:     leave.StatusPending,
			Reason:     req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("leave request created", "request_id", created.ID, "employee_id", employeeID, "days", days)
	return leave.ToRequestResponse(created), nil
}

// UpdateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateRequest(ctx context.Context, req leave.UpdateRequestRequest) (leave.RequestResponse, error) {
	leaveType, start, end, err := req.Validate()
	if err != nil {
		return leave.RequestResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	var updated leave.Request
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.getRequest(txCtx, req.ID)
		if err != nil {
			return err
		}
		if actor.IsEmployee() && existing.EmployeeID != actor.EmployeeID {
			return leave.ErrForbidden
		}
		if existing.Status != leave.StatusPending {
			return leave.ErrNotPending
		}

		overlap, err := s.requestRepo.ExistsOverlapping(txCtx, existing.EmployeeID, start, end, &existing.ID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		days := leave.CountDays(start, end)
		if err := s.checkAvailable(txCtx, existing.EmployeeID, leaveType, start.Year(), days); err != nil {
			return err
		}

		existing.Type = leaveType
		existing.StartDate = start
		existing.EndDate = end
		existing.Days = days
		if req.Reason != nil {
			existing.Reason = req.Reason
		}

		updated, err = s.requestRepo.Update(txCtx, existing)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToRequestResponse(updated), nil
}

// DeleteRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.getRequest(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsEmployee() && existing.EmployeeID != actor.EmployeeID {
		return leave.ErrForbidden
	}
	if existing.Status == leave.StatusApproved {
		return leave.ErrApprovedNotDeletable
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, req leave.ListRequestsRequest) ([]leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var filter leave.RequestFilter
	if actor.IsEmployee() {
		if actor.EmployeeID == "" {
			return nil, leave.ErrEmployeeNotLinked
		}
		filter.EmployeeID = &actor.EmployeeID
	} else if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}
	if req.Status != "" {
		status := leave.RequestStatus(req.Status)
		filter.Status = &status
	}
	if req.Type != "" {
		leaveType := leave.LeaveType(req.Type)
		filter.Type = &leaveType
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToRequestResponse(r))
	}
	return responses, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.RequestResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return s.transition(ctx, id, func(txCtx context.Context, r leave.Request) error {
		if r.Status != leave.StatusApproved {
			emp, err := s.getEmployee(txCtx, r.EmployeeID)
			if err != nil {
				return err
			}
			balance, err := s.ensureBalance(txCtx, emp, r.Type, r.StartDate.Year())
			if err != nil {
				return err
			}
			if balance.Used+float64(r.Days) > balance.Total {
				return leave.ErrInsufficientBalance
			}
			if err := s.balanceRepo.UpdateUsed(txCtx, balance.ID, balance.Used+float64(r.Days)); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		approverID := actor.UserID
		approvedAt := s.now()
		return s.requestRepo.UpdateStatus(txCtx, r.ID, leave.StatusApproved, &approverID, &approvedAt)
	})
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.RequestResponse, error) {
	return s.transition(ctx, id, func(txCtx context.Context, r leave.Request) error {
		if err := s.releaseIfApproved(txCtx, r); err != nil {
			return err
		}
		decidedAt := s.now()
		return s.requestRepo.UpdateStatus(txCtx, r.ID, leave.StatusRejected, nil, &decidedAt)
	})
}

// MarkPending implements leave.LeaveService.
func (s *LeaveServiceImpl) MarkPending(ctx context.Context, id string) (leave.RequestResponse, error) {
	return s.transition(ctx, id, func(txCtx context.Context, r leave.Request) error {
		if err := s.releaseIfApproved(txCtx, r); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(txCtx, r.ID, leave.StatusPending, nil, nil)
	})
}

// transition loads the request, applies fn and returns the stored result,
// all within one transaction.
func (s *LeaveServiceImpl) transition(ctx context.Context, id string, fn func(txCtx context.Context, r leave.Request) error) (leave.RequestResponse, error) {
	var result leave.Request
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.getRequest(txCtx, id)
		if err != nil {
			return err
		}
		if err := fn(txCtx, r); err != nil {
			return err
		}
		result, err = s.getRequest(txCtx, id)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("leave request status changed", "request_id", id, "status", result.Status)
	return leave.ToRequestResponse(result), nil
}

// releaseIfApproved gives the days of an approved request back to the balance.
func (s *LeaveServiceImpl) releaseIfApproved(ctx context.Context, r leave.Request) error {
	if r.Status != leave.StatusApproved {
		return nil
	}
	balance, err := s.balanceRepo.Get(ctx, r.EmployeeID, r.StartDate.Year(), r.Type)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get leave balance: %w", err)
	}
	used := balance.Used - float64(r.Days)
	if used < 0 {
		used = 0
	}
	if err := s.balanceRepo.UpdateUsed(ctx, balance.ID, used); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	return nil
}

func (s *LeaveServiceImpl) getRequest(ctx context.Context, id string) (leave.Request, error) {
	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return r, nil
}

// ListBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) ListBalances(ctx context.Context, req leave.ListBalancesRequest) ([]leave.BalanceResponse, error) {
	year, err := req.ParseYear(s.now().Year())
	if err != nil {
		return nil, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var targets []string
	var scope *string
	switch {
	case actor.IsEmployee():
		if actor.EmployeeID == "" {
			return nil, leave.ErrEmployeeNotLinked
		}
		targets = []string{actor.EmployeeID}
		scope = &actor.EmployeeID
	case req.EmployeeID != "":
		targets = []string{req.EmployeeID}
		scope = &req.EmployeeID
	default:
		targets, err = s.employeeRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	var balances []leave.Balance
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, employeeID := range targets {
			emp, err := s.getEmployee(txCtx, employeeID)
			if err != nil {
				return err
			}
			for _, leaveType := range leave.LeaveTypes {
				if _, err := s.ensureBalance(txCtx, emp, leaveType, year); err != nil {
					return err
				}
			}
		}

		balances, err = s.balanceRepo.ListByYear(txCtx, year, scope)
		if err != nil {
			return fmt.Errorf("failed to list leave balances: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.ToBalanceResponse(b))
	}
	return responses, nil
}

// GetPolicies implements leave.LeaveService. Types without a stored policy
// report the default entitlement.
func (s *LeaveServiceImpl) GetPolicies(ctx context.Context, year int) ([]leave.PolicyResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	policies, err := s.policyRepo.GetByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave policies: %w", err)
	}

	byType := make(map[leave.LeaveType]float64, len(policies))
	for _, p := range policies {
		byType[p.Type] = p.Total
	}

	responses := make([]leave.PolicyResponse, 0, len(leave.LeaveTypes))
	for _, leaveType := range leave.LeaveTypes {
		total, ok := byType[leaveType]
		if !ok {
			total = DefaultTotal(leaveType)
		}
		responses = append(responses, leave.PolicyResponse{
			Year:  year,
			Type:  string(leaveType),
			Total: total,
		})
	}
	return responses, nil
}

// UpdatePolicies implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdatePolicies(ctx context.Context, req leave.UpdatePoliciesRequest) ([]leave.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, p := range req.Policies {
			if _, err := s.policyRepo.Upsert(txCtx, leave.Policy{
				Year:  req.Year,
				Type:  leave.LeaveType(p.Type),
				Total: p.Total,
			}); err != nil {
				return fmt.Errorf("failed to upsert leave policy: %w", err)
			}
		}

		balances, err := s.balanceRepo.ListByYear(txCtx, req.Year, nil)
		if err != nil {
			return fmt.Errorf("failed to list leave balances: %w", err)
		}

		employees := make(map[string]employee.Employee)
		for _, b := range balances {
			emp, ok := employees[b.EmployeeID]
			if !ok {
				emp, err = s.getEmployee(txCtx, b.EmployeeID)
				if err != nil {
					return err
				}
				employees[b.EmployeeID] = emp
			}
			if _, err := s.ensureBalance(txCtx, emp, b.Type, req.Year); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("leave policies updated", "year", req.Year)
	return s.GetPolicies(ctx, req.Year)
}
