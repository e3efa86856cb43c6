package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

// Create implements attendance.BreakRepository.
func (b *breakRepository) Create(ctx context.Context, newBreak attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	id, err := newID()
	if err != nil {
		return attendance.Break{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO attendance_breaks (id, attendance_id, break_start, break_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, id, newBreak.AttendanceID, newBreak.BreakStart, newBreak.BreakEnd).Scan(&newBreak.ID, &newBreak.CreatedAt)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}
	return newBreak, nil
}

// GetActive implements attendance.BreakRepository.
func (b *breakRepository) GetActive(ctx context.Context, attendanceID string) (attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	var br attendance.Break
	err := q.QueryRow(ctx, `
		SELECT id, attendance_id, break_start, break_end, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1 AND break_end IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`, attendanceID).Scan(&br.ID, &br.AttendanceID, &br.BreakStart, &br.BreakEnd, &br.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrNoActiveBreak
		}
		return attendance.Break{}, fmt.Errorf("failed to get active break: %w", err)
	}
	return br, nil
}

// End implements attendance.BreakRepository.
func (b *breakRepository) End(ctx context.Context, id string, breakEnd time.Time) error {
	q := GetQuerier(ctx, b.db)

	if _, err := q.Exec(ctx, `UPDATE attendance_breaks SET break_end = $1 WHERE id = $2`, breakEnd, id); err != nil {
		return fmt.Errorf("failed to end break: %w", err)
	}
	return nil
}

// CloseActive implements attendance.BreakRepository. Breaks that started
// after the moment are closed at their own start.
func (b *breakRepository) CloseActive(ctx context.Context, attendanceID string, at time.Time) error {
	q := GetQuerier(ctx, b.db)

	_, err := q.Exec(ctx, `
		UPDATE attendance_breaks
		SET break_end = GREATEST(break_start, $1)
		WHERE attendance_id = $2 AND break_end IS NULL
	`, at, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to close active breaks: %w", err)
	}
	return nil
}

// ClampEnds implements attendance.BreakRepository.
func (b *breakRepository) ClampEnds(ctx context.Context, attendanceID string, at time.Time) error {
	q := GetQuerier(ctx, b.db)

	_, err := q.Exec(ctx, `
		UPDATE attendance_breaks
		SET break_end = GREATEST(break_start, $1)
		WHERE attendance_id = $2 AND break_end > $1
	`, at, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to clamp break ends: %w", err)
	}
	return nil
}
