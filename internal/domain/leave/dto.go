package leave

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
)

const DateLayout = "2006-01-02"

type RequestFilter struct {
	EmployeeID *string
	Status     *RequestStatus
	Type       *LeaveType
}

type ListRequestsRequest struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
	Type       string `json:"type"`
}

func (r *ListRequestsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != "" {
		if _, ok := ParseStatus(r.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be pending, approved or rejected",
			})
		}
	}
	if r.Type != "" {
		if _, ok := ParseLeaveType(r.Type); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: ErrInvalidLeaveType.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRequestRequest struct {
	EmployeeID string  `json:"employee_id,omitempty"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

// Validate checks the request and returns the parsed range and day count.
func (r *CreateRequestRequest) Validate() (LeaveType, time.Time, time.Time, error) {
	return validateRange(r.Type, r.StartDate, r.EndDate)
}

type UpdateRequestRequest struct {
	ID        string  `json:"-"`
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateRequestRequest) Validate() (LeaveType, time.Time, time.Time, error) {
	if validator.IsEmpty(r.ID) {
		return "", time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "id",
			Message: "id is required",
		}}
	}
	return validateRange(r.Type, r.StartDate, r.EndDate)
}

func validateRange(typ, startStr, endStr string) (LeaveType, time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	leaveType, ok := ParseLeaveType(typ)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: ErrInvalidLeaveType.Error(),
		})
	}

	start, startOK := validator.IsValidDate(startStr)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(endStr)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateRange.Error(),
			})
		} else if start.Year() != end.Year() {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrCrossYearRequest.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return "", time.Time{}, time.Time{}, errs
	}
	return leaveType, start, end, nil
}

type ListBalancesRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       string `json:"year"`
}

// ParseYear returns the requested year, or fallback when none was given.
func (r *ListBalancesRequest) ParseYear(fallback int) (int, error) {
	if r.Year == "" {
		return fallback, nil
	}
	year, err := strconv.Atoi(r.Year)
	if err != nil || year < 1970 || year > 9999 {
		return 0, validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be a four digit number",
		}}
	}
	return year, nil
}

type PolicyInput struct {
	Type  string  `json:"type"`
	Total float64 `json:"total"`
}

type UpdatePoliciesRequest struct {
	Year     int           `json:"year"`
	Policies []PolicyInput `json:"policies"`
}

func (r *UpdatePoliciesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit number",
		})
	}
	if len(r.Policies) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "policies",
			Message: "policies must not be empty",
		})
	}
	for i, p := range r.Policies {
		field := "policies[" + strconv.Itoa(i) + "]"
		if _, ok := ParseLeaveType(p.Type); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".type",
				Message: ErrInvalidLeaveType.Error(),
			})
		}
		if p.Total < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".total",
				Message: "total must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason,omitempty"`
	ApproverID   *string `json:"approver_id,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func ToRequestResponse(r Request) RequestResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         string(r.Type),
		StartDate:    r.StartDate.Format(DateLayout),
		EndDate:      r.EndDate.Format(DateLayout),
		Days:         r.Days,
		Status:       string(r.Status),
		Reason:       r.Reason,
		ApproverID:   r.ApproverID,
		ApprovedAt:   approvedAt,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Year         int     `json:"year"`
	Type         string  `json:"type"`
	Total        float64 `json:"total"`
	Used         float64 `json:"used"`
	Remaining    float64 `json:"remaining"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:   b.EmployeeID,
		EmployeeName: b.EmployeeName,
		Year:         b.Year,
		Type:         string(b.Type),
		Total:        b.Total,
		Used:         b.Used,
		Remaining:    b.Remaining(),
	}
}

type PolicyResponse struct {
	Year  int     `json:"year"`
	Type  string  `json:"type"`
	Total float64 `json:"total"`
}
