package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeavePolicyRepository_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeavePolicyRepository(db)

	_, err := repo.GetByYearType(ctx, 2024, leave.LeaveTypeSick)
	assert.ErrorIs(t, err, leave.ErrPolicyNotFound)

	_, err = repo.Upsert(ctx, leave.Policy{Year: 2024, Type: leave.LeaveTypeSick, Total: 10})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, leave.Policy{Year: 2024, Type: leave.LeaveTypeSick, Total: 12})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, leave.Policy{Year: 2024, Type: leave.LeaveTypeCasual, Total: 6})
	require.NoError(t, err)

	p, err := repo.GetByYearType(ctx, 2024, leave.LeaveTypeSick)
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Total)

	policies, err := repo.GetByYear(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, policies, 2)
}

func TestLeaveBalanceRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)

	emp := createTestEmployee(t, ctx, db, "leave@example.com", employee.RoleEmployee)

	_, err := repo.Get(ctx, emp.ID, 2024, leave.LeaveTypeCasual)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	created, err := repo.Create(ctx, leave.Balance{EmployeeID: emp.ID, Year: 2024, Type: leave.LeaveTypeCasual, Total: 6})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTotal(ctx, created.ID, 4.5))
	require.NoError(t, repo.UpdateUsed(ctx, created.ID, 2))

	got, err := repo.Get(ctx, emp.ID, 2024, leave.LeaveTypeCasual)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Total)
	assert.Equal(t, 2.0, got.Used)

	balances, err := repo.ListByYear(ctx, 2024, &emp.ID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.NotNil(t, balances[0].EmployeeName)
	assert.Equal(t, "Test Employee", *balances[0].EmployeeName)

	assert.ErrorIs(t, repo.UpdateUsed(ctx, "0190b7e0-0000-7000-8000-000000000000", 1), leave.ErrBalanceNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)
	emp := createTestEmployee(t, ctx, db, "tx@example.com", employee.RoleEmployee)

	boom := errors.New("boom")
	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, leave.Balance{EmployeeID: emp.ID, Year: 2024, Type: leave.LeaveTypeSick, Total: 10}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.Get(ctx, emp.ID, 2024, leave.LeaveTypeSick)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestSettingsRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(db)

	require.NoError(t, repo.Upsert(ctx, map[string]string{"logo_expanded": "a.png", "logo_collapsed": "b.png"}))
	require.NoError(t, repo.Upsert(ctx, map[string]string{"logo_expanded": "c.png"}))

	got, err := repo.GetMany(ctx, []string{"logo_expanded", "logo_collapsed", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"logo_expanded": "c.png", "logo_collapsed": "b.png"}, got)
}
