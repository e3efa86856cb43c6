package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be employee or manager")
	ErrInvalidHiredAt        = errors.New("hired_at must be in YYYY-MM-DD format")
	ErrManagerRecordLocked   = errors.New("managers cannot create, modify or delete manager records")
	ErrManagerPromotion      = errors.New("managers cannot promote employees to manager")
	ErrUnauthorized          = errors.New("unauthorized to access this employee")
	ErrUserAlreadyLinked     = errors.New("employee already has a user account")
	ErrUserNotLinked         = errors.New("employee has no user account")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own employee record")
	ErrInvalidPasswordLength = errors.New("password must be at least 6 characters")
)
