package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/auth"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	user.UserRepository
	byEmail map[string]user.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeTokens struct {
	owners  map[string]string
	revoked map[string]bool
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{owners: map[string]string{}, revoked: map[string]bool{}}
}

func (f *fakeTokens) Create(_ context.Context, userID, token string, _ int64, _ auth.SessionTrackingRequest) error {
	f.owners[token] = userID
	return nil
}

func (f *fakeTokens) IsRevoked(_ context.Context, token string) (string, bool, error) {
	owner, ok := f.owners[token]
	if !ok {
		return "", true, nil
	}
	return owner, f.revoked[token], nil
}

func (f *fakeTokens) Revoke(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeTokens, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	employeeID := "emp-1"
	users := &fakeUsers{byEmail: map[string]user.User{
		"staff@example.com": {
			ID:           "user-1",
			Email:        "staff@example.com",
			PasswordHash: string(hash),
			Name:         "Staff Member",
			Role:         user.RoleEmployee,
			EmployeeID:   &employeeID,
		},
		"nopass@example.com": {
			ID:    "user-2",
			Email: "nopass@example.com",
			Role:  user.RoleManager,
		},
	}}
	tokens := newFakeTokens()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(passthroughTx{}, users, tokens, jwtService), tokens, jwtService
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens, _ := newTestService(t)
	session := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "erpctl"}

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{"success", auth.LoginRequest{Email: "staff@example.com", Password: "password123"}, nil},
		{"email is normalised", auth.LoginRequest{Email: "  Staff@Example.com ", Password: "password123"}, nil},
		{"wrong password", auth.LoginRequest{Email: "staff@example.com", Password: "wrongpassword"}, auth.ErrInvalidCredentials},
		{"unknown email", auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}, auth.ErrInvalidCredentials},
		{"account without password", auth.LoginRequest{Email: "nopass@example.com", Password: "password123"}, auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req, session)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
			assert.Equal(t, "user-1", resp.User.ID)
			assert.Equal(t, "employee", resp.User.Role)
			assert.Equal(t, "user-1", tokens.owners[resp.RefreshToken])
		})
	}
}

func TestAuthService_Login_ValidationError(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"}, auth.SessionTrackingRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_Unknown(t *testing.T) {
	svc, _, jwtService := newTestService(t)

	// Signed correctly but never stored.
	token, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: token})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.LoginWithGoogle(ctx, "staff@example.com", true, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)

	_, err = svc.LoginWithGoogle(ctx, "ghost@example.com", true, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrOAuthEmailUnknown)

	_, err = svc.LoginWithGoogle(ctx, "staff@example.com", false, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrOAuthEmailNotVerified)
}
