package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_OpenSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	breaks := postgresql.NewBreakRepository(db)

	emp := createTestEmployee(t, ctx, db, "att@example.com", employee.RoleEmployee)
	checkIn := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	_, err := repo.GetOpenSession(ctx, emp.ID)
	assert.ErrorIs(t, err, attendance.ErrOpenAttendanceNotFound)

	created, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: checkIn})
	require.NoError(t, err)

	open, err := repo.GetOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, open.ID)
	require.NotNil(t, open.EmployeeName)
	assert.Equal(t, "Test Employee", *open.EmployeeName)

	br, err := breaks.Create(ctx, attendance.Break{AttendanceID: created.ID, BreakStart: checkIn.Add(4 * time.Hour)})
	require.NoError(t, err)

	active, err := breaks.GetActive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, br.ID, active.ID)

	require.NoError(t, breaks.End(ctx, br.ID, checkIn.Add(4*time.Hour+30*time.Minute)))
	_, err = breaks.GetActive(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)

	require.NoError(t, repo.Close(ctx, created.ID, checkIn.Add(9*time.Hour)))
	_, err = repo.GetOpenSession(ctx, emp.ID)
	assert.ErrorIs(t, err, attendance.ErrOpenAttendanceNotFound)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckOut)
	assert.True(t, got.CheckOut.Equal(checkIn.Add(9*time.Hour)))
	require.Len(t, got.Breaks, 1)
	require.NotNil(t, got.Breaks[0].BreakEnd)
	assert.Equal(t, 30*time.Minute, got.Breaks[0].BreakEnd.Sub(got.Breaks[0].BreakStart))
}

func TestAttendanceRepository_CloseActiveAndClamp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	breaks := postgresql.NewBreakRepository(db)

	emp := createTestEmployee(t, ctx, db, "clamp@example.com", employee.RoleEmployee)
	checkIn := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	att, err := repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: checkIn})
	require.NoError(t, err)

	longEnd := checkIn.Add(12 * time.Hour)
	_, err = breaks.Create(ctx, attendance.Break{AttendanceID: att.ID, BreakStart: checkIn.Add(2 * time.Hour), BreakEnd: &longEnd})
	require.NoError(t, err)
	_, err = breaks.Create(ctx, attendance.Break{AttendanceID: att.ID, BreakStart: checkIn.Add(6 * time.Hour)})
	require.NoError(t, err)

	at := checkIn.Add(5 * time.Hour)
	require.NoError(t, breaks.CloseActive(ctx, att.ID, at))
	require.NoError(t, breaks.ClampEnds(ctx, att.ID, at))

	got, err := repo.GetByID(ctx, att.ID)
	require.NoError(t, err)
	require.Len(t, got.Breaks, 2)

	// the first break is pulled back, the one that started later ends at its start
	require.NotNil(t, got.Breaks[0].BreakEnd)
	assert.True(t, got.Breaks[0].BreakEnd.Equal(at))
	require.NotNil(t, got.Breaks[1].BreakEnd)
	assert.True(t, got.Breaks[1].BreakEnd.Equal(got.Breaks[1].BreakStart))
}

func TestAttendanceRepository_ListAndStale(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	alice := createTestEmployee(t, ctx, db, "alice@example.com", employee.RoleEmployee)
	bob := createTestEmployee(t, ctx, db, "bob@example.com", employee.RoleEmployee)

	day := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	closed := day.Add(8 * time.Hour)
	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: alice.ID, CheckIn: day, CheckOut: &closed})
	require.NoError(t, err)
	aliceOpen, err := repo.Create(ctx, attendance.Attendance{EmployeeID: alice.ID, CheckIn: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: bob.ID, CheckIn: day.AddDate(0, 0, 2)})
	require.NoError(t, err)

	all, err := repo.List(ctx, attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, bob.ID, all[0].EmployeeID, "most recent check-in first")

	after := day.AddDate(0, 0, 1)
	mine, err := repo.List(ctx, attendance.Filter{EmployeeID: alice.ID, CheckInAfter: &after})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, aliceOpen.ID, mine[0].ID)

	stale, err := repo.ListStaleOpen(ctx, day.AddDate(0, 0, 1).Add(time.Hour), nil)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, aliceOpen.ID, stale[0].ID)

	stale, err = repo.ListStaleOpen(ctx, day.AddDate(0, 0, 3), &bob.ID)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, bob.ID, stale[0].EmployeeID)

	open, err := repo.CountOpen(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, open)

	n, err := repo.CountCheckInsBetween(ctx, alice.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	deleted, err := repo.DeleteByEmployee(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	assert.ErrorIs(t, repo.Delete(ctx, aliceOpen.ID), attendance.ErrAttendanceNotFound)
}
