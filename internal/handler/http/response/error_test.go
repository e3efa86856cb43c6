package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/auth"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	_, _, formatErr := timeofday.Parse("9:5", timeofday.AM)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "email", Message: "email is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped validation", fmt.Errorf("create: %w", validator.ValidationErrors{{Field: "type", Message: "bad"}}), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"time format", formatErr, http.StatusBadRequest, "BAD_REQUEST"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unauthenticated", fmt.Errorf("claims: %w", user.ErrUnauthenticated), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"manager only", user.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{"manager record", employee.ErrManagerRecordLocked, http.StatusForbidden, "FORBIDDEN"},
		{"open session", attendance.ErrOpenAttendanceExists, http.StatusConflict, "CONFLICT"},
		{"no active break", attendance.ErrNoActiveBreak, http.StatusConflict, "CONFLICT"},
		{"break overlap", attendance.ErrBreakOverlaps, http.StatusConflict, "CONFLICT"},
		{"checkout in future", attendance.ErrCheckOutInFuture, http.StatusBadRequest, "BAD_REQUEST"},
		{"insufficient balance", leave.ErrInsufficientBalance, http.StatusConflict, "CONFLICT"},
		{"leave overlap", leave.ErrOverlappingRequest, http.StatusConflict, "CONFLICT"},
		{"leave not found", leave.ErrLeaveRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invoice number", invoice.ErrInvoiceNumberExists, http.StatusConflict, "CONFLICT"},
		{"logo empty", settings.ErrLogoEmpty, http.StatusBadRequest, "BAD_REQUEST"},
		{"image type", file.ErrUnsupportedImage, http.StatusBadRequest, "BAD_REQUEST"},
		{"image size", file.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_LogoEmptyMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, fmt.Errorf("update logo: %w", settings.ErrLogoEmpty))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "logo cannot be empty", body.Error.Message)
}
