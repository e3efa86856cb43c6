package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	var b leave.Balance
	err := q.QueryRow(ctx, `
		SELECT id, employee_id, year, leave_type, total, used, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2 AND leave_type = $3
	`, employeeID, year, leaveType).Scan(
		&b.ID, &b.EmployeeID, &b.Year, &b.Type, &b.Total, &b.Used, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Balance{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO leave_balances (id, employee_id, year, leave_type, total, used)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, id, balance.EmployeeID, balance.Year, balance.Type, balance.Total, balance.Used).Scan(
		&balance.ID, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return balance, nil
}

// UpdateTotal implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateTotal(ctx context.Context, id string, total float64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_balances SET total = $1, updated_at = NOW() WHERE id = $2`, total, id)
	if err != nil {
		return fmt.Errorf("failed to update leave balance total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// UpdateUsed implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateUsed(ctx context.Context, id string, used float64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_balances SET used = $1, updated_at = NOW() WHERE id = $2`, used, id)
	if err != nil {
		return fmt.Errorf("failed to update leave balance usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// ListByYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByYear(ctx context.Context, year int, employeeID *string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.employee_id, b.year, b.leave_type, b.total, b.used, b.created_at, b.updated_at,
			   NULLIF(TRIM(e.first_name || ' ' || e.last_name), '') AS employee_name
		FROM leave_balances b
		LEFT JOIN employees e ON e.id = b.employee_id
		WHERE b.year = $1
	`
	args := []interface{}{year}
	if employeeID != nil {
		query += " AND b.employee_id = $2"
		args = append(args, *employeeID)
	}
	query += " ORDER BY employee_name, b.leave_type"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.Year, &b.Type, &b.Total, &b.Used, &b.CreatedAt, &b.UpdatedAt,
			&b.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
