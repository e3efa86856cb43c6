package user

import (
	"context"
	"io"
)

// ProfileService serves the signed-in user's own account
type ProfileService interface {
	GetMe(ctx context.Context) (UserResponse, error)

	// UpdateMe changes the display name and avatar and notifies the user's other sessions
	UpdateMe(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)

	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// UploadAvatar stores a new avatar image and points the profile at it
	UploadAvatar(ctx context.Context, file io.Reader, filename string) (UserResponse, error)
}
