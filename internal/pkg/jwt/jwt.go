package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// token kinds carried in the "type" claim
const (
	typeAccess  = "access"
	typeRefresh = "refresh"
	typeSSE     = "sse"
)

const sseTokenTTL = 5 * time.Minute

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ValidateRefreshToken(tokenString string) (userID string, err error)
	// GenerateSSEToken issues a short-lived token accepted only by the event stream
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	tokenAuth  *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration
	ttlErr     error
	now        func() time.Time
}

// NewJWTService signs HS256 tokens with secretKey. Lifetimes are Go
// durations such as "1h" or "168h"; a malformed one fails token generation.
func NewJWTService(secretKey string, accessTokenExpiration string, refreshTokenExpiration string) Service {
	s := &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}

	var err error
	if s.accessTTL, err = time.ParseDuration(accessTokenExpiration); err != nil {
		s.ttlErr = fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpiration, err)
	}
	if s.refreshTTL, err = time.ParseDuration(refreshTokenExpiration); err != nil && s.ttlErr == nil {
		s.ttlErr = fmt.Errorf("invalid refresh token expiration %q: %w", refreshTokenExpiration, err)
	}
	return s
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) encode(claims map[string]interface{}, ttl time.Duration) (string, int64, error) {
	expiresAt := j.now().Add(ttl).Unix()
	claims["exp"] = expiresAt
	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign %v token: %w", claims["type"], err)
	}
	return tokenString, expiresAt, nil
}

// GenerateAccessToken carries the claims ActorFromContext reads back.
func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (string, int64, error) {
	if j.ttlErr != nil {
		return "", 0, j.ttlErr
	}
	return j.encode(map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": valueOrNil(employeeID),
		"role":        string(role),
		"type":        typeAccess,
	}, j.accessTTL)
}

func (j *JWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	if j.ttlErr != nil {
		return "", 0, j.ttlErr
	}
	// jti keeps two refreshes in the same second distinct
	return j.encode(map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"type":    typeRefresh,
	}, j.refreshTTL)
}

// ValidateRefreshToken checks signature, expiry and type, and returns the user ID
func (j *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	return j.validateTyped(tokenString, typeRefresh)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) GenerateSSEToken(userID string) (string, int, error) {
	token, _, err := j.encode(map[string]interface{}{
		"user_id": userID,
		"type":    typeSSE,
	}, sseTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(sseTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	return j.validateTyped(tokenString, typeSSE)
}

func (j *JWTService) validateTyped(tokenString string, wantType string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	if tokenType, ok := token.Get("type"); !ok || tokenType != wantType {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, _ := token.Get("user_id")
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return userID, nil
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
