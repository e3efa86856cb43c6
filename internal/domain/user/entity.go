package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages managers
	RoleManager  Role = "manager"  // Manages employees, approves leave
	RoleEmployee Role = "employee" // Self-service only
)

// ParseRole accepts a known role name; anything else is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	AvatarURL    *string
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// Actor is the authenticated caller of a request, taken from the access token.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsEmployee reports whether the actor is limited to their own records.
func (a Actor) IsEmployee() bool {
	return a.Role == RoleEmployee
}

// CanManage reports whether the actor may act on other employees.
func (a Actor) CanManage() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
