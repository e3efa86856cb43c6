package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	UpdateProfile(ctx context.Context, id string, name string, avatarURL *string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// SyncEmployee mirrors directory changes onto the linked account
	SyncEmployee(ctx context.Context, employeeID, email, name string, role Role) error
	Count(ctx context.Context) (int64, error)
}
