package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.check_in, a.check_out, a.created_at, a.updated_at,
	NULLIF(TRIM(e.first_name || ' ' || e.last_name), '') AS employee_name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckOut, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	return att, err
}

// attachBreaks loads the breaks of every record in one query.
func (a *attendanceRepository) attachBreaks(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	ids := make([]string, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		index[rec.ID] = i
	}

	rows, err := q.Query(ctx, `
		SELECT id, attendance_id, break_start, break_end, created_at
		FROM attendance_breaks
		WHERE attendance_id = ANY($1::uuid[])
		ORDER BY created_at, break_start
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b attendance.Break
		if err := rows.Scan(&b.ID, &b.AttendanceID, &b.BreakStart, &b.BreakEnd, &b.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		i := index[b.AttendanceID]
		records[i].Breaks = append(records[i].Breaks, b)
	}
	return rows.Err()
}

func (a *attendanceRepository) getOne(ctx context.Context, where string, notFound error, args ...interface{}) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.check_in DESC
		LIMIT 1
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, notFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	records := []attendance.Attendance{att}
	if err := a.attachBreaks(ctx, records); err != nil {
		return attendance.Attendance{}, err
	}
	return records[0], nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a.getOne(ctx, "a.id = $1", attendance.ErrAttendanceNotFound, id)
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return a.getOne(ctx, "a.employee_id = $1 AND a.check_out IS NULL", attendance.ErrOpenAttendanceNotFound, employeeID)
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances (id, employee_id, check_in, check_out)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query, id, newAttendance.EmployeeID, newAttendance.CheckIn, newAttendance.CheckOut).
		Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// CountCheckInsBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountCheckInsBetween(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE employee_id = $1 AND check_in >= $2 AND check_in < $3
	`, employeeID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, checkOut time.Time) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances SET check_out = $1, updated_at = NOW()
		WHERE id = $2
	`, checkOut, id)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (a *attendanceRepository) list(ctx context.Context, where string, args []interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.check_in DESC
	`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	if err := a.attachBreaks(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	where := "TRUE"
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.CheckInAfter != nil {
		where += fmt.Sprintf(" AND a.check_in >= $%d", argIdx)
		args = append(args, *filter.CheckInAfter)
		argIdx++
	}
	if filter.CheckInBefore != nil {
		where += fmt.Sprintf(" AND a.check_in < $%d", argIdx)
		args = append(args, *filter.CheckInBefore)
	}

	return a.list(ctx, where, args)
}

// ListStaleOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListStaleOpen(ctx context.Context, cutoff time.Time, employeeID *string) ([]attendance.Attendance, error) {
	where := "a.check_out IS NULL AND a.check_in <= $1"
	args := []interface{}{cutoff}
	if employeeID != nil {
		where += " AND a.employee_id = $2"
		args = append(args, *employeeID)
	}
	return a.list(ctx, where, args)
}

// CountOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountOpen(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE check_out IS NULL`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open attendances: %w", err)
	}
	return count, nil
}

// Delete implements attendance.AttendanceRepository. Breaks go with it.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendances: %w", err)
	}
	return tag.RowsAffected(), nil
}
