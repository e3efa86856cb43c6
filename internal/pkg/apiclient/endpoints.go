package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/attendance"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/auth"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/dashboard"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/employee"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/invoice"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/leave"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/settings"
	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"golang.org/x/oauth2"
)

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func attendanceQuery(f attendance.ListAttendanceRequest) url.Values {
	q := url.Values{}
	if f.EmployeeID != "" {
		q.Set("employee_id", f.EmployeeID)
	}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	return q
}

// ---- auth ----

// Login signs in and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", auth.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := c.tokens.Save(tokenFrom(resp.AccessToken, resp.AccessTokenExpiresIn, resp.RefreshToken)); err != nil {
		return auth.TokenResponse{}, err
	}
	return resp, nil
}

// refresh exchanges the refresh token for a new access token.
func (c *Client) refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	const path = "/auth/refresh"
	req, err := c.newRequest(ctx, http.MethodPost, path, auth.RefreshTokenRequest{RefreshToken: tok.RefreshToken}, "")
	if err != nil {
		return nil, err
	}
	raw, status, err := c.send(req)
	if err != nil {
		return nil, c.transportError(http.MethodPost, path, err)
	}
	if status >= http.StatusBadRequest {
		return nil, c.failure(http.MethodPost, path, status, raw)
	}

	var resp auth.AccessTokenResponse
	if err := decodeData(raw, &resp); err != nil {
		return nil, err
	}
	next := tokenFrom(resp.AccessToken, resp.AccessTokenExpiresIn, tok.RefreshToken)
	if err := c.tokens.Save(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Logout revokes the refresh token and forgets the session, even when
// the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	tok, err := c.tokens.Load()
	if err != nil || tok == nil {
		return err
	}
	callErr := c.do(ctx, http.MethodPost, "/auth/logout", auth.RefreshTokenRequest{RefreshToken: tok.RefreshToken}, nil)
	if err := c.tokens.Clear(); err != nil {
		return err
	}
	return callErr
}

// ---- profile ----

func (c *Client) Me(ctx context.Context) (user.UserResponse, error) {
	var resp user.UserResponse
	err := c.do(ctx, http.MethodGet, "/me", nil, &resp)
	return resp, err
}

func (c *Client) UpdateMe(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	var resp user.UserResponse
	err := c.do(ctx, http.MethodPut, "/me", req, &resp)
	return resp, err
}

func (c *Client) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/me/password", req, nil)
}

func (c *Client) Dashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	var resp dashboard.DashboardResponse
	err := c.do(ctx, http.MethodGet, "/dashboard", nil, &resp)
	return resp, err
}

func (c *Client) Employees(ctx context.Context, search string) ([]employee.EmployeeResponse, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var resp []employee.EmployeeResponse
	err := c.do(ctx, http.MethodGet, withQuery("/employees", q), nil, &resp)
	return resp, err
}

// ---- attendance ----

func (c *Client) Attendance(ctx context.Context, f attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	var resp []attendance.AttendanceResponse
	err := c.do(ctx, http.MethodGet, withQuery("/attendance", attendanceQuery(f)), nil, &resp)
	return resp, err
}

func (c *Client) AttendanceSummary(ctx context.Context, f attendance.ListAttendanceRequest) ([]attendance.EmployeeSummaryResponse, error) {
	var resp []attendance.EmployeeSummaryResponse
	err := c.do(ctx, http.MethodGet, withQuery("/attendance/summary", attendanceQuery(f)), nil, &resp)
	return resp, err
}

// Timesheet downloads the filtered records as a PDF.
func (c *Client) Timesheet(ctx context.Context, f attendance.ListAttendanceRequest) ([]byte, error) {
	return c.doRaw(ctx, withQuery("/attendance/timesheet", attendanceQuery(f)))
}

func (c *Client) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	var resp attendance.AttendanceResponse
	err := c.do(ctx, http.MethodPost, "/attendance/checkin", req, &resp)
	return resp, err
}

func (c *Client) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	var resp attendance.AttendanceResponse
	err := c.do(ctx, http.MethodPost, "/attendance/checkout", req, &resp)
	return resp, err
}

func (c *Client) StartBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakResponse, error) {
	var resp attendance.BreakResponse
	err := c.withFallback(ctx, OpBreakStart, "", http.MethodPost, req, &resp)
	return resp, err
}

func (c *Client) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakResponse, error) {
	var resp attendance.BreakResponse
	err := c.withFallback(ctx, OpBreakEnd, "", http.MethodPost, req, &resp)
	return resp, err
}

func (c *Client) AddManualBreak(ctx context.Context, req attendance.ManualBreakRequest) (attendance.BreakResponse, error) {
	var resp attendance.BreakResponse
	err := c.withFallback(ctx, OpManualBreak, "", http.MethodPost, req, &resp)
	return resp, err
}

func (c *Client) DeleteAttendance(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/attendance/"+url.PathEscape(id), nil, nil)
}

// ---- leave ----

func (c *Client) LeaveRequests(ctx context.Context, f leave.ListRequestsRequest) ([]leave.RequestResponse, error) {
	q := url.Values{}
	if f.EmployeeID != "" {
		q.Set("employee_id", f.EmployeeID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	var resp []leave.RequestResponse
	err := c.do(ctx, http.MethodGet, withQuery("/leave/requests", q), nil, &resp)
	return resp, err
}

func (c *Client) CreateLeave(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	var resp leave.RequestResponse
	err := c.do(ctx, http.MethodPost, "/leave/requests", req, &resp)
	return resp, err
}

func (c *Client) decideLeave(ctx context.Context, op Operation, id string) (leave.RequestResponse, error) {
	var resp leave.RequestResponse
	err := c.withFallback(ctx, op, url.PathEscape(id), http.MethodPatch, nil, &resp)
	return resp, err
}

func (c *Client) ApproveLeave(ctx context.Context, id string) (leave.RequestResponse, error) {
	return c.decideLeave(ctx, OpLeaveApprove, id)
}

func (c *Client) RejectLeave(ctx context.Context, id string) (leave.RequestResponse, error) {
	return c.decideLeave(ctx, OpLeaveReject, id)
}

func (c *Client) ResetLeave(ctx context.Context, id string) (leave.RequestResponse, error) {
	return c.decideLeave(ctx, OpLeavePending, id)
}

// LeaveBalances lists balances of year; zero means the current year.
func (c *Client) LeaveBalances(ctx context.Context, year int, employeeID string) ([]leave.BalanceResponse, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if employeeID != "" {
		q.Set("employee_id", employeeID)
	}
	var resp []leave.BalanceResponse
	err := c.do(ctx, http.MethodGet, withQuery("/leave/balances", q), nil, &resp)
	return resp, err
}

// LeavePolicies lists the entitlements of year. Only managers and admins may
// read them.
func (c *Client) LeavePolicies(ctx context.Context, year int) ([]leave.PolicyResponse, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var resp []leave.PolicyResponse
	err := c.do(ctx, http.MethodGet, withQuery("/leave/policies", q), nil, &resp)
	return resp, err
}

// ---- settings ----

func (c *Client) Logo(ctx context.Context) (settings.LogoResponse, error) {
	var resp settings.LogoResponse
	err := c.do(ctx, http.MethodGet, "/settings/logo", nil, &resp)
	return resp, err
}

func (c *Client) UpdateLogo(ctx context.Context, req settings.UpdateLogoRequest) (settings.LogoResponse, error) {
	var resp settings.LogoResponse
	err := c.do(ctx, http.MethodPut, "/settings/logo", req, &resp)
	return resp, err
}

// ---- invoices ----

func (c *Client) Invoices(ctx context.Context, f invoice.InvoiceFilter) ([]invoice.InvoiceResponse, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var resp []invoice.InvoiceResponse
	err := c.do(ctx, http.MethodGet, withQuery("/invoices", q), nil, &resp)
	return resp, err
}

func (c *Client) CreateInvoice(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	var resp invoice.InvoiceResponse
	err := c.do(ctx, http.MethodPost, "/invoices", req, &resp)
	return resp, err
}

func (c *Client) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, "/invoices/"+url.PathEscape(id)+"/pdf")
}
