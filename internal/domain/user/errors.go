package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidPasswordLength   = errors.New("password must be at least 6 characters")
	ErrWrongPassword           = errors.New("current password is incorrect")
	ErrUnauthenticated         = errors.New("authentication required")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeNotLinked       = errors.New("your employee profile is not linked")
)
