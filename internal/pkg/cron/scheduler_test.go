package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	calls  int
	closed int
	err    error
}

func (f *fakeCloser) CloseExpired(_ context.Context, employeeID *string) (int, error) {
	f.calls++
	if employeeID != nil {
		return 0, errors.New("expected a global sweep")
	}
	return f.closed, f.err
}

func TestRunOnce(t *testing.T) {
	s := NewScheduler()
	s.AddJob("ok", time.Minute, func(ctx context.Context) error { return nil })
	s.AddJob("fails", time.Minute, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("panics", time.Minute, func(ctx context.Context) error { panic("bad job") })

	failed := s.RunOnce(context.Background())

	assert.Equal(t, []string{"fails", "panics"}, failed)
}

func TestStartStop(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestAttendanceJobs(t *testing.T) {
	closer := &fakeCloser{closed: 3}
	jobs := NewAttendanceJobs(closer, 0)
	s := NewScheduler()
	jobs.RegisterJobs(s)

	assert.Empty(t, s.RunOnce(context.Background()))
	assert.Equal(t, 1, closer.calls)

	closer.err = errors.New("db down")
	assert.Equal(t, []string{"auto_close_expired_attendances"}, s.RunOnce(context.Background()))
}
