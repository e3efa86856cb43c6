package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.PolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

// GetByYear implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByYear(ctx context.Context, year int) ([]leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, year, leave_type, total, created_at, updated_at
		FROM leave_policies
		WHERE year = $1
		ORDER BY leave_type
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave policies: %w", err)
	}
	defer rows.Close()

	var policies []leave.Policy
	for rows.Next() {
		var p leave.Policy
		if err := rows.Scan(&p.ID, &p.Year, &p.Type, &p.Total, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// GetByYearType implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) GetByYearType(ctx context.Context, year int, leaveType leave.LeaveType) (leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	var p leave.Policy
	err := q.QueryRow(ctx, `
		SELECT id, year, leave_type, total, created_at, updated_at
		FROM leave_policies
		WHERE year = $1 AND leave_type = $2
	`, year, leaveType).Scan(&p.ID, &p.Year, &p.Type, &p.Total, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Policy{}, leave.ErrPolicyNotFound
		}
		return leave.Policy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}
	return p, nil
}

// Upsert implements leave.PolicyRepository.
func (r *leavePolicyRepositoryImpl) Upsert(ctx context.Context, policy leave.Policy) (leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Policy{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO leave_policies (id, year, leave_type, total)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (year, leave_type)
		DO UPDATE SET total = EXCLUDED.total, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, id, policy.Year, policy.Type, policy.Total).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return leave.Policy{}, fmt.Errorf("failed to upsert leave policy: %w", err)
	}
	return policy, nil
}
