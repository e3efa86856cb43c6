package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/auth"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/storage"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/validator"
	"github.com/cmlabs-hris/workflow-erp/internal/service/file"
)

type domainError struct {
	err    error
	status int
}

// domainErrors maps sentinels to statuses. The sentinel text is sent as
// the message, so wrapping context never reaches the client.
var domainErrors = []domainError{
	// Auth and access
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrRefreshTokenRevoked, http.StatusUnauthorized},
	{auth.ErrOAuthState, http.StatusUnauthorized},
	{auth.ErrOAuthEmailUnknown, http.StatusUnauthorized},
	{auth.ErrOAuthEmailNotVerified, http.StatusUnauthorized},
	{auth.ErrOAuthDisabled, http.StatusNotFound},
	{user.ErrUnauthenticated, http.StatusUnauthorized},
	{user.ErrAdminAccessRequired, http.StatusForbidden},
	{user.ErrManagerAccessRequired, http.StatusForbidden},
	{user.ErrInsufficientPermissions, http.StatusForbidden},
	{user.ErrEmployeeNotLinked, http.StatusForbidden},

	// Users and employees
	{user.ErrUserNotFound, http.StatusNotFound},
	{user.ErrUserEmailExists, http.StatusConflict},
	{user.ErrInvalidPasswordLength, http.StatusBadRequest},
	{user.ErrWrongPassword, http.StatusBadRequest},
	{employee.ErrEmployeeNotFound, http.StatusNotFound},
	{employee.ErrEmailExists, http.StatusConflict},
	{employee.ErrUserAlreadyLinked, http.StatusConflict},
	{employee.ErrUserNotLinked, http.StatusBadRequest},
	{employee.ErrInvalidRole, http.StatusBadRequest},
	{employee.ErrInvalidHiredAt, http.StatusBadRequest},
	{employee.ErrInvalidPasswordLength, http.StatusBadRequest},
	{employee.ErrManagerRecordLocked, http.StatusForbidden},
	{employee.ErrManagerPromotion, http.StatusForbidden},
	{employee.ErrUnauthorized, http.StatusForbidden},
	{employee.ErrCannotDeleteSelf, http.StatusForbidden},

	// Attendance
	{attendance.ErrAttendanceNotFound, http.StatusNotFound},
	{attendance.ErrOpenAttendanceNotFound, http.StatusNotFound},
	{attendance.ErrForbidden, http.StatusForbidden},
	{attendance.ErrOpenAttendanceExists, http.StatusConflict},
	{attendance.ErrAlreadyCheckedIn, http.StatusConflict},
	{attendance.ErrAlreadyCheckedOut, http.StatusConflict},
	{attendance.ErrBreakAlreadyActive, http.StatusConflict},
	{attendance.ErrActiveBreakExists, http.StatusConflict},
	{attendance.ErrNoActiveBreak, http.StatusConflict},
	{attendance.ErrBreakOverlaps, http.StatusConflict},
	{attendance.ErrCheckInInFuture, http.StatusBadRequest},
	{attendance.ErrCheckOutInFuture, http.StatusBadRequest},
	{attendance.ErrCheckOutBeforeCheckIn, http.StatusBadRequest},
	{attendance.ErrBreakEndBeforeStart, http.StatusBadRequest},
	{attendance.ErrBreakBeforeCheckIn, http.StatusBadRequest},
	{attendance.ErrBreakAfterShiftEnd, http.StatusBadRequest},
	{attendance.ErrInvalidTimeOverride, http.StatusBadRequest},
	{attendance.ErrEmployeeIDRequired, http.StatusBadRequest},
	{attendance.ErrAttendanceIDRequired, http.StatusBadRequest},

	// Leave
	{leave.ErrLeaveRequestNotFound, http.StatusNotFound},
	{leave.ErrBalanceNotFound, http.StatusNotFound},
	{leave.ErrPolicyNotFound, http.StatusNotFound},
	{leave.ErrForbidden, http.StatusForbidden},
	{leave.ErrEmployeeNotLinked, http.StatusForbidden},
	{leave.ErrOverlappingRequest, http.StatusConflict},
	{leave.ErrInsufficientBalance, http.StatusConflict},
	{leave.ErrNotPending, http.StatusConflict},
	{leave.ErrApprovedNotDeletable, http.StatusConflict},
	{leave.ErrInvalidLeaveType, http.StatusBadRequest},
	{leave.ErrInvalidDateRange, http.StatusBadRequest},
	{leave.ErrCrossYearRequest, http.StatusBadRequest},

	// Invoices and settings
	{invoice.ErrInvoiceNotFound, http.StatusNotFound},
	{invoice.ErrInvoiceNumberExists, http.StatusConflict},
	{invoice.ErrInvalidStatus, http.StatusBadRequest},
	{settings.ErrLogoEmpty, http.StatusBadRequest},
	{settings.ErrInvalidVariant, http.StatusBadRequest},

	// Files
	{file.ErrUnsupportedImage, http.StatusBadRequest},
	{file.ErrImageUnreadable, http.StatusBadRequest},
	{file.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
	{storage.ErrInvalidPath, http.StatusBadRequest},
	{storage.ErrFileNotFound, http.StatusNotFound},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Fail(w, http.StatusUnprocessableEntity, "Validation failed", validationErrs.ToMap())
		return
	}

	var formatErr *timeofday.FormatError
	if errors.As(err, &formatErr) {
		BadRequest(w, formatErr.Error(), nil)
		return
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			Fail(w, de.status, de.err.Error(), nil)
			return
		}
	}

	slog.Error("unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
