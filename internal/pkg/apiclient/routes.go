package apiclient

import "strings"

// Operation names an action whose server path has moved between releases.
type Operation string

const (
	OpBreakStart           Operation = "break_start"
	OpBreakEnd             Operation = "break_end"
	OpManualBreak          Operation = "manual_break"
	OpLeaveApprove         Operation = "leave_approve"
	OpLeaveReject          Operation = "leave_reject"
	OpLeavePending         Operation = "leave_pending"
	OpForgotPasswordStart  Operation = "forgot_password_start"
	OpForgotPasswordVerify Operation = "forgot_password_verify"
)

// Routes maps each operation to its candidate paths, primary first.
// "{id}" is replaced with the target ID.
type Routes map[Operation][]string

// DefaultRoutes returns the built-in candidate table.
func DefaultRoutes() Routes {
	return Routes{
		OpBreakStart:  {"/attendance/break/start", "/attendance/start", "/attendance/breaks/start"},
		OpBreakEnd:    {"/attendance/break/end", "/attendance/end", "/attendance/breaks/end"},
		OpManualBreak: {"/attendance/break/manual", "/attendance/manual", "/attendance/manual-break", "/attendance/breaks/manual"},
		OpLeaveApprove: {
			"/leave/requests/{id}/approve", "/leave/{id}/approve", "/leaves/requests/{id}/approve",
		},
		OpLeaveReject: {
			"/leave/requests/{id}/reject", "/leave/{id}/reject", "/leaves/requests/{id}/reject",
		},
		OpLeavePending: {
			"/leave/requests/{id}/pending", "/leave/{id}/pending", "/leaves/requests/{id}/pending",
		},
		OpForgotPasswordStart: {
			"/auth/forgot-password/start", "/auth/forgot/start", "/auth/reset-password/start",
		},
		OpForgotPasswordVerify: {
			"/auth/forgot-password/verify", "/auth/forgot/verify", "/auth/reset-password/verify",
		},
	}
}

// Merge returns a copy of r with the operations in overrides replaced.
// Empty override lists are ignored.
func (r Routes) Merge(overrides map[string][]string) Routes {
	out := make(Routes, len(r))
	for op, paths := range r {
		out[op] = append([]string(nil), paths...)
	}
	for op, paths := range overrides {
		if len(paths) > 0 {
			out[Operation(op)] = append([]string(nil), paths...)
		}
	}
	return out
}

// Candidates returns the expanded paths of op.
func (r Routes) Candidates(op Operation, id string) []string {
	paths := r[op]
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.ReplaceAll(p, "{id}", id))
	}
	return out
}

// authExemptPrefixes are paths whose 401 means bad credentials, not an expired session.
var authExemptPrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/forgot",
	"/auth/reset-password",
}

func isAuthExempt(path string) bool {
	for _, p := range authExemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
