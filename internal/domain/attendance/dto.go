package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
)

// ========================================
// FILTERS
// ========================================

// Filter narrows a record listing. From and To are inclusive local dates
// (YYYY-MM-DD); inverted bounds are swapped rather than rejected.
type Filter struct {
	EmployeeID string
	From       string
	To         string

	// CheckInAfter and CheckInBefore are coarse storage bounds derived from From/To.
	CheckInAfter  *time.Time
	CheckInBefore *time.Time
}

type ListAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (r *ListAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.From != "" {
		if _, ok := validator.IsValidDate(r.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if r.To != "" {
		if _, ok := validator.IsValidDate(r.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// COMMANDS
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	// CheckInAt lets admins and managers record a past check-in.
	CheckInAt string `json:"check_in_at,omitempty"`
}

type CheckOutRequest struct {
	AttendanceID string `json:"attendance_id,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	CheckOutAt   string `json:"check_out_at,omitempty"`
}

type BreakRequest struct {
	AttendanceID string `json:"attendance_id,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
}

type ManualBreakRequest struct {
	AttendanceID string `json:"attendance_id"`
	BreakStartAt string `json:"break_start_at"`
	BreakEndAt   string `json:"break_end_at"`
}

func (r *ManualBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}
	if validator.IsEmpty(r.BreakStartAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start_at",
			Message: "break_start_at is required",
		})
	}
	if validator.IsEmpty(r.BreakEndAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_end_at",
			Message: "break_end_at is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID           string  `json:"id"`
	AttendanceID string  `json:"attendance_id"`
	BreakStart   string  `json:"break_start"`
	BreakEnd     *string `json:"break_end,omitempty"`
	Duration     string  `json:"duration"`
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	CheckIn      string          `json:"check_in"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Breaks       []BreakResponse `json:"breaks"`
	IsOpen       bool            `json:"is_open"`
	WorkedHours  string          `json:"worked_hours"`
	BreakHours   string          `json:"break_hours"`
	Worked       string          `json:"worked"`
}

type DayGroupResponse struct {
	EmployeeID string               `json:"employee_id"`
	Date       string               `json:"date"`
	Label      string               `json:"label"`
	TotalHours string               `json:"total_hours"`
	Records    []AttendanceResponse `json:"records"`
}

type EmployeeSummaryResponse struct {
	EmployeeID     string              `json:"employee_id"`
	EmployeeName   *string             `json:"employee_name,omitempty"`
	LatestCheckIn  string              `json:"latest_check_in"`
	CheckedInToday bool                `json:"checked_in_today"`
	OpenSession    *AttendanceResponse `json:"open_session,omitempty"`
	ActiveBreak    *BreakResponse      `json:"active_break,omitempty"`
	WorkedHours    string              `json:"worked_hours"`
	BreakHours     string              `json:"break_hours"`
	RecordCount    int                 `json:"record_count"`
}

type DeleteByEmployeeResponse struct {
	Deleted int64 `json:"deleted"`
}

// NormalizeRange orders two optional YYYY-MM-DD bounds so that from <= to.
func NormalizeRange(from, to string) (string, string) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from != "" && to != "" && from > to {
		return to, from
	}
	return from, to
}
