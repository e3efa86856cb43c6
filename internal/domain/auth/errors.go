package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrOAuthDisabled         = errors.New("google sign-in is not configured")
	ErrOAuthState            = errors.New("invalid oauth state")
	ErrOAuthEmailUnknown     = errors.New("no account is registered for this google email")
	ErrOAuthEmailNotVerified = errors.New("google email is not verified")
)
