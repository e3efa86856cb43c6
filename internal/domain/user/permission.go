package user

type Permission string

const (
	// Self service
	PermissionProfileEditOwn   Permission = "profile.edit_own"
	PermissionAttendanceSelf   Permission = "attendance.self"
	PermissionLeaveRequestOwn  Permission = "leave.request_own"
	PermissionSettingsViewLogo Permission = "settings.view_logo"

	// Management
	PermissionAttendanceManual Permission = "attendance.manual"
	PermissionAttendanceDelete Permission = "attendance.delete"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionLeavePolicies    Permission = "leave.policies"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionInvoiceManage    Permission = "invoice.manage"
	PermissionSettingsEditLogo Permission = "settings.edit_logo"

	// Admin only
	PermissionManagerManage Permission = "manager.manage"
)

var selfService = []Permission{
	PermissionProfileEditOwn,
	PermissionAttendanceSelf,
	PermissionLeaveRequestOwn,
	PermissionSettingsViewLogo,
}

var management = []Permission{
	PermissionAttendanceManual,
	PermissionAttendanceDelete,
	PermissionLeaveApprove,
	PermissionLeavePolicies,
	PermissionEmployeeManage,
	PermissionInvoiceManage,
	PermissionSettingsEditLogo,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    append(append(append([]Permission{}, selfService...), management...), PermissionManagerManage),
	RoleManager:  append(append([]Permission{}, selfService...), management...),
	RoleEmployee: selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
