package leave

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

// UsedDays sums the days of approved requests of leaveType whose start date
// falls in year on the local calendar.
func UsedDays(requests []leave.Request, leaveType leave.LeaveType, year int) float64 {
	var used float64
	for _, r := range requests {
		if r.Status != leave.StatusApproved || r.Type != leaveType {
			continue
		}
		if r.StartDate.In(timeofday.Location()).Year() != year {
			continue
		}
		used += float64(r.Days)
	}
	return used
}

// Resolve prefers the stored balance and falls back to the computed one.
func Resolve(stored *leave.Balance, computed leave.Balance) leave.Balance {
	if stored != nil {
		return *stored
	}
	return computed
}

// Compute derives a balance from the policy total, the employee's hire date
// and the requests on record.
func Compute(policyTotal float64, employeeID string, hiredAt *time.Time, requests []leave.Request, leaveType leave.LeaveType, year int) leave.Balance {
	var own []leave.Request
	for _, r := range requests {
		if r.EmployeeID == employeeID {
			own = append(own, r)
		}
	}
	return leave.Balance{
		EmployeeID: employeeID,
		Year:       year,
		Type:       leaveType,
		Total:      ProratedTotal(policyTotal, hiredAt, year),
		Used:       UsedDays(own, leaveType, year),
	}
}

// Effective returns one balance per leave type for employeeID. A stored
// balance wins; otherwise the balance is computed from policyTotals, falling
// back to DefaultTotal for types without a policy.
func Effective(stored []leave.Balance, policyTotals map[leave.LeaveType]float64, employeeID string, hiredAt *time.Time, requests []leave.Request, year int) []leave.Balance {
	byType := make(map[leave.LeaveType]*leave.Balance, len(stored))
	for i := range stored {
		if stored[i].EmployeeID == employeeID && stored[i].Year == year {
			byType[stored[i].Type] = &stored[i]
		}
	}

	out := make([]leave.Balance, 0, len(leave.LeaveTypes))
	for _, t := range leave.LeaveTypes {
		total, ok := policyTotals[t]
		if !ok {
			total = DefaultTotal(t)
		}
		out = append(out, Resolve(byType[t], Compute(total, employeeID, hiredAt, requests, t, year)))
	}
	return out
}

// DisplayBalance is a balance rounded down to whole days for display.
type DisplayBalance struct {
	Type      leave.LeaveType
	Total     int
	Used      int
	Remaining int
}

// Display floors every figure of b. Entitlements keep two decimals in
// storage; people are shown whole days.
func Display(b leave.Balance) DisplayBalance {
	return DisplayBalance{
		Type:      b.Type,
		Total:     int(math.Floor(b.Total)),
		Used:      int(math.Floor(b.Used)),
		Remaining: int(math.Floor(b.Remaining())),
	}
}

// SummaryLine renders balances as "sick: 10 total, 2 used, 8 left | casual: ..."
// in the order of leave.LeaveTypes. Types without a balance are skipped.
func SummaryLine(balances []leave.Balance) string {
	byType := make(map[leave.LeaveType]leave.Balance, len(balances))
	for _, b := range balances {
		byType[b.Type] = b
	}

	var parts []string
	for _, t := range leave.LeaveTypes {
		b, ok := byType[t]
		if !ok {
			continue
		}
		d := Display(b)
		parts = append(parts, fmt.Sprintf("%s: %d total, %d used, %d left", t, d.Total, d.Used, d.Remaining))
	}
	return strings.Join(parts, " | ")
}
