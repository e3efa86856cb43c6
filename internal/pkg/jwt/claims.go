package jwt

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ActorFromContext reads the caller identity placed in ctx by jwtauth.Verifier.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", user.ErrUnauthenticated)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, fmt.Errorf("user_id claim is missing or invalid: %w", user.ErrUnauthenticated)
	}

	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.Actor{}, fmt.Errorf("role claim is missing or invalid: %w", user.ErrUnauthenticated)
	}

	// employee_id is null for admins without a directory entry
	employeeID, _ := claims["employee_id"].(string)

	return user.Actor{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}

// NewContext returns ctx carrying an access token for actor, the same
// shape jwtauth.Verifier stores. Background jobs and tests use it to call
// services on behalf of a known caller.
func NewContext(ctx context.Context, actor user.Actor) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", actor.UserID)
	_ = token.Set("role", string(actor.Role))
	_ = token.Set("type", "access")
	if actor.EmployeeID != "" {
		_ = token.Set("employee_id", actor.EmployeeID)
	}
	return jwtauth.NewContext(ctx, token, nil)
}
