package attendance

import "time"

// SetClock replaces the service clock in tests.
func (s *AttendanceServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}
