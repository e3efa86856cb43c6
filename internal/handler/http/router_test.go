package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	router := NewRouter(jwtService, stubHandlers(), RouterOptions{
		AppName:        "workflow-erp-test",
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return router, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	employeeID := "emp-1"
	token, _, err := jwtService.GenerateAccessToken("user-1", "someone@example.com", &employeeID, role)
	require.NoError(t, err)
	return token
}

func servedBy(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data["handler"]
}

func TestRouter_RoleGates(t *testing.T) {
	router, jwtService := newTestRouter(t)

	tests := []struct {
		name        string
		role        user.Role
		method      string
		path        string
		wantStatus  int
		wantHandler string
	}{
		{"login is public", "", http.MethodPost, "/api/v1/auth/login", http.StatusOK, "Login"},
		{"event stream checks its own token", "", http.MethodGet, "/api/v1/events", http.StatusOK, "Stream"},
		{"me requires auth", "", http.MethodGet, "/api/v1/me", http.StatusUnauthorized, ""},
		{"me", user.RoleEmployee, http.MethodGet, "/api/v1/me", http.StatusOK, "GetMe"},
		{"dashboard", user.RoleEmployee, http.MethodGet, "/api/v1/dashboard", http.StatusOK, "GetDashboard"},

		{"break start", user.RoleEmployee, http.MethodPost, "/api/v1/attendance/break/start", http.StatusOK, "StartBreak"},
		{"break start alias", user.RoleEmployee, http.MethodPost, "/api/v1/attendance/start", http.StatusOK, "StartBreak"},
		{"break end alias", user.RoleEmployee, http.MethodPost, "/api/v1/attendance/breaks/end", http.StatusOK, "EndBreak"},
		{"manual break denied to employees", user.RoleEmployee, http.MethodPost, "/api/v1/attendance/manual-break", http.StatusForbidden, ""},
		{"manual break alias", user.RoleManager, http.MethodPost, "/api/v1/attendance/manual", http.StatusOK, "AddManualBreak"},
		{"timesheet", user.RoleEmployee, http.MethodGet, "/api/v1/attendance/timesheet", http.StatusOK, "Timesheet"},
		{"bulk delete", user.RoleAdmin, http.MethodDelete, "/api/v1/attendance/employee/e1", http.StatusOK, "DeleteByEmployee"},
		{"delete denied to employees", user.RoleEmployee, http.MethodDelete, "/api/v1/attendance/a1", http.StatusForbidden, ""},

		{"leave update", user.RoleEmployee, http.MethodPatch, "/api/v1/leave/requests/r1", http.StatusOK, "UpdateRequest"},
		{"approve denied to employees", user.RoleEmployee, http.MethodPatch, "/api/v1/leave/requests/r1/approve", http.StatusForbidden, ""},
		{"approve", user.RoleManager, http.MethodPatch, "/api/v1/leave/requests/r1/approve", http.StatusOK, "ApproveRequest"},
		{"reject alias", user.RoleManager, http.MethodPatch, "/api/v1/leave/r1/reject", http.StatusOK, "RejectRequest"},
		{"pending alias", user.RoleAdmin, http.MethodPatch, "/api/v1/leaves/requests/r1/pending", http.StatusOK, "MarkPending"},
		{"policies denied to employees", user.RoleEmployee, http.MethodGet, "/api/v1/leave/policies", http.StatusForbidden, ""},

		{"invoice pdf", user.RoleEmployee, http.MethodGet, "/api/v1/invoices/i1/pdf", http.StatusOK, "DownloadPDF"},
		{"invoice create denied to employees", user.RoleEmployee, http.MethodPost, "/api/v1/invoices", http.StatusForbidden, ""},
		{"invoice create", user.RoleManager, http.MethodPost, "/api/v1/invoices", http.StatusOK, "Create"},

		{"logo read", user.RoleEmployee, http.MethodGet, "/api/v1/settings/logo", http.StatusOK, "GetLogo"},
		{"logo update denied to employees", user.RoleEmployee, http.MethodPut, "/api/v1/settings/logo", http.StatusForbidden, ""},
		{"logo upload", user.RoleManager, http.MethodPost, "/api/v1/settings/logo/upload", http.StatusOK, "UploadLogo"},

		{"employee user provisioning", user.RoleManager, http.MethodPut, "/api/v1/employees/e1/user/password", http.StatusOK, "UpsertUserPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, tt.role))
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantHandler != "" {
				assert.Equal(t, tt.wantHandler, servedBy(t, rec))
			}
		})
	}
}

func TestRouter_RejectsRefreshTokenAsBearer(t *testing.T) {
	router, jwtService := newTestRouter(t)
	refresh, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
