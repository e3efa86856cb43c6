package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// NormalizeRole maps an empty role to employee and rejects anything other
// than employee or manager.
func NormalizeRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	}
	return "", ErrInvalidRole
}

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      Role
	Phone     *string
	Position  *string
	Salary    *decimal.Decimal
	HiredAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserID *string
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsManager() bool {
	return e.Role == RoleManager
}
