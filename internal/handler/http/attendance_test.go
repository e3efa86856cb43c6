package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	attendance.AttendanceService

	checkIn    attendance.CheckInRequest
	endBreak   error
	listReq    attendance.ListAttendanceRequest
	deletedFor string
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	f.checkIn = req
	return attendance.AttendanceResponse{ID: "a1", EmployeeID: "emp-1", IsOpen: true}, nil
}

func (f *fakeAttendanceService) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakResponse, error) {
	return attendance.BreakResponse{}, f.endBreak
}

func (f *fakeAttendanceService) Timesheet(ctx context.Context, req attendance.ListAttendanceRequest) ([]byte, error) {
	f.listReq = req
	return []byte("%PDF-1.3 fake"), nil
}

func (f *fakeAttendanceService) DeleteByEmployee(ctx context.Context, employeeID string) (attendance.DeleteByEmployeeResponse, error) {
	f.deletedFor = employeeID
	return attendance.DeleteByEmployeeResponse{Deleted: 3}, nil
}

func TestAttendanceHandler_CheckInAcceptsEmptyBody(t *testing.T) {
	svc := &fakeAttendanceService{}
	h := NewAttendanceHandler(svc)

	rec := httptest.NewRecorder()
	h.CheckIn(rec, httptest.NewRequest(http.MethodPost, "/api/v1/attendance/checkin", http.NoBody))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, attendance.CheckInRequest{}, svc.checkIn)

	rec = httptest.NewRecorder()
	h.CheckIn(rec, httptest.NewRequest(http.MethodPost, "/api/v1/attendance/checkin", bytes.NewBufferString(`{"employee_id":"emp-2","check_in_at":"2024-03-10T08:00"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-2", svc.checkIn.EmployeeID)
	assert.Equal(t, "2024-03-10T08:00", svc.checkIn.CheckInAt)
}

func TestAttendanceHandler_EndBreakWithoutActiveBreak(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceService{endBreak: attendance.ErrNoActiveBreak})

	rec := httptest.NewRecorder()
	h.EndBreak(rec, httptest.NewRequest(http.MethodPost, "/api/v1/attendance/break/end", http.NoBody))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active break")
}

func TestAttendanceHandler_Timesheet(t *testing.T) {
	svc := &fakeAttendanceService{}
	h := NewAttendanceHandler(svc)

	rec := httptest.NewRecorder()
	h.Timesheet(rec, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/timesheet?from=2024-03-01&to=2024-03-31&employee_id=emp-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timesheet.pdf")
	assert.Equal(t, attendance.ListAttendanceRequest{EmployeeID: "emp-1", From: "2024-03-01", To: "2024-03-31"}, svc.listReq)
}

func TestAttendanceHandler_DeleteByEmployee(t *testing.T) {
	svc := &fakeAttendanceService{}
	r := chi.NewRouter()
	r.Delete("/attendance/employee/{employeeId}", NewAttendanceHandler(svc).DeleteByEmployee)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/attendance/employee/emp-9", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-9", svc.deletedFor)
	assert.Contains(t, rec.Body.String(), `"deleted":3`)
}
