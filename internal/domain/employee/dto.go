package employee

import (
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	Role   *Role
	Search string

	// OnlyID restricts the listing to a single employee
	OnlyID *string
}

type CreateEmployeeRequest struct {
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Phone     *string          `json:"phone,omitempty"`
	Position  *string          `json:"position,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	HiredAt   *string          `json:"hired_at,omitempty"`
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if _, err := NormalizeRole(r.Role); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: err.Error(),
		})
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 7 to 15 digits, optionally starting with +",
		})
	}
	if r.HiredAt != nil && *r.HiredAt != "" {
		if _, ok := validator.IsValidDate(*r.HiredAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hired_at",
				Message: ErrInvalidHiredAt.Error(),
			})
		}
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID        string           `json:"-"`
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Role      *string          `json:"role,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Position  *string          `json:"position,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	HiredAt   *string          `json:"hired_at,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "email must be a valid email address",
			})
		}
	}
	if r.Role != nil {
		if _, err := NormalizeRole(*r.Role); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: err.Error(),
			})
		}
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 7 to 15 digits, optionally starting with +",
		})
	}
	if r.HiredAt != nil && *r.HiredAt != "" {
		if _, ok := validator.IsValidDate(*r.HiredAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hired_at",
				Message: ErrInvalidHiredAt.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateUserRequest struct {
	EmployeeID string `json:"-"`
	Password   string `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	if len(r.Password) < 6 {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: ErrInvalidPasswordLength.Error(),
		}}
	}
	return nil
}

type UpsertPasswordRequest struct {
	EmployeeID string `json:"-"`
	Password   string `json:"password"`
}

func (r *UpsertPasswordRequest) Validate() error {
	if len(r.Password) < 6 {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: ErrInvalidPasswordLength.Error(),
		}}
	}
	return nil
}

type EmployeeResponse struct {
	ID        string           `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	FullName  string           `json:"full_name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Phone     *string          `json:"phone,omitempty"`
	Position  *string          `json:"position,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	HiredAt   *string          `json:"hired_at,omitempty"`
	UserID    *string          `json:"user_id,omitempty"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

func ToResponse(emp Employee) EmployeeResponse {
	var hiredAt *string
	if emp.HiredAt != nil {
		s := emp.HiredAt.Format("2006-01-02")
		hiredAt = &s
	}

	return EmployeeResponse{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		FullName:  emp.FullName(),
		Email:     emp.Email,
		Role:      string(emp.Role),
		Phone:     emp.Phone,
		Position:  emp.Position,
		Salary:    emp.Salary,
		HiredAt:   hiredAt,
		UserID:    emp.UserID,
		CreatedAt: emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
