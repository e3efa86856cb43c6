package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/auth"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginErr       error
	googleEmail    string
	googleVerified bool
	loggedOut      string
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{
		AccessToken:           "access",
		AccessTokenExpiresIn:  1700000000,
		RefreshToken:          "refresh",
		RefreshTokenExpiresIn: 1800000000,
		User:                  user.UserResponse{ID: "user-1", Email: req.Email},
	}, nil
}

func (f *fakeAuthService) LoginWithGoogle(ctx context.Context, email string, verified bool, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.googleEmail, f.googleVerified = email, verified
	return auth.TokenResponse{AccessToken: "google-access", RefreshToken: "google-refresh"}, nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if req.RefreshToken != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	return auth.AccessTokenResponse{AccessToken: "access-2"}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = refreshToken
	return nil
}

type fakeGoogleService struct{}

func (fakeGoogleService) NewState() (string, error)  { return "signed-state", nil }
func (fakeGoogleService) VerifyState(s string) error { return nil }
func (fakeGoogleService) AuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}
func (fakeGoogleService) Profile(ctx context.Context, code string) (oauth.GoogleProfile, error) {
	return oauth.GoogleProfile{Email: "someone@example.com", VerifiedEmail: true}, nil
}

func createAuthHandler(svc *fakeAuthService, google oauth.GoogleService) AuthHandler {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	return NewAuthHandler(jwtService, svc, google, "")
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
		wantCookie bool
	}{
		{"success", `{"email":"Someone@Example.com","password":"secret1"}`, nil, http.StatusCreated, true},
		{"malformed json", `{"email":`, nil, http.StatusBadRequest, false},
		{"missing fields", `{}`, nil, http.StatusUnprocessableEntity, false},
		{"wrong password", `{"email":"someone@example.com","password":"nope"}`, auth.ErrInvalidCredentials, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createAuthHandler(&fakeAuthService{loginErr: tt.loginErr}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var cookie *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == refreshTokenCookieName {
					cookie = c
				}
			}
			if tt.wantCookie {
				require.NotNil(t, cookie)
				assert.Equal(t, "refresh", cookie.Value)
				assert.True(t, cookie.HttpOnly)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestAuthHandler_RefreshPrefersCookie(t *testing.T) {
	h := createAuthHandler(&fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", jsonBody(t, auth.RefreshTokenRequest{RefreshToken: "stale"}))
	req.AddCookie(&http.Cookie{Name: refreshTokenCookieName, Value: "refresh"})
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", jsonBody(t, auth.RefreshTokenRequest{RefreshToken: "stale"}))
	rec = httptest.NewRecorder()
	h.RefreshToken(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	h := createAuthHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", jsonBody(t, auth.RefreshTokenRequest{RefreshToken: "refresh"}))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refresh", svc.loggedOut)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestAuthHandler_GoogleDisabled(t *testing.T) {
	h := createAuthHandler(&fakeAuthService{}, nil)

	rec := httptest.NewRecorder()
	h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_GoogleFlow(t *testing.T) {
	svc := &fakeAuthService{}
	h := createAuthHandler(svc, fakeGoogleService{})

	rec := httptest.NewRecorder()
	h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "state=signed-state")

	q := url.Values{"state": {"signed-state"}, "code": {"abc"}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/callback/google?"+q.Encode(), nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "signed-state"})
	rec = httptest.NewRecorder()
	h.OAuthCallbackGoogle(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "someone@example.com", svc.googleEmail)
	assert.True(t, svc.googleVerified)
}

func TestAuthHandler_GoogleStateMismatch(t *testing.T) {
	svc := &fakeAuthService{}
	h := createAuthHandler(svc, fakeGoogleService{})

	q := url.Values{"state": {"forged"}, "code": {"abc"}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/callback/google?"+q.Encode(), nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "signed-state"})
	rec := httptest.NewRecorder()
	h.OAuthCallbackGoogle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.googleEmail)
}
