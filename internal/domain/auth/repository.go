package auth

import "context"

// RefreshTokenRepository stores hashed refresh tokens so they can be revoked.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error

	// IsRevoked returns the owner of the token and whether it is revoked or expired
	IsRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)

	Revoke(ctx context.Context, token string) error
}
