package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
)

// DefaultTotals are the annual entitlements used when no policy exists for a year.
var DefaultTotals = map[leave.LeaveType]float64{
	leave.LeaveTypeSick:   10,
	leave.LeaveTypeCasual: 7,
}

// DefaultTotal returns the fallback entitlement of a leave type.
func DefaultTotal(leaveType leave.LeaveType) float64 {
	return DefaultTotals[leaveType]
}

// ProratedTotal scales an annual entitlement by the months of year the
// employee is employed, counting the hire month as a full month.
// Employees hired before year (or with no hire date) get the full total,
// those hired after year get nothing.
func ProratedTotal(total float64, hiredAt *time.Time, year int) float64 {
	if hiredAt == nil || hiredAt.IsZero() {
		return total
	}
	switch {
	case hiredAt.Year() < year:
		return total
	case hiredAt.Year() > year:
		return 0
	}

	months := 12 - int(hiredAt.Month()) + 1
	if months < 0 {
		months = 0
	}
	if months > 12 {
		months = 12
	}
	return round2(total / 12 * float64(months))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
