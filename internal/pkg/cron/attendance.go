package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredSessionCloser closes attendance sessions that outlived the shift cap.
type ExpiredSessionCloser interface {
	CloseExpired(ctx context.Context, employeeID *string) (int, error)
}

type AttendanceJobs struct {
	closer   ExpiredSessionCloser
	interval time.Duration
}

func NewAttendanceJobs(closer ExpiredSessionCloser, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &AttendanceJobs{closer: closer, interval: interval}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_expired_attendances", j.interval, j.AutoCloseExpired)
}

// AutoCloseExpired closes every open session older than the shift cap.
func (j *AttendanceJobs) AutoCloseExpired(ctx context.Context) error {
	closed, err := j.closer.CloseExpired(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to close expired attendances: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: closed expired attendances", "count", closed)
	}
	return nil
}
