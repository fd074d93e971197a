package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Reference data
	PermissionWorkLocationManage Permission = "worklocation.manage"
	PermissionScheduleManage     Permission = "schedule.manage"
	PermissionScheduleViewOwn    Permission = "schedule.view_own"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// staffPermissions is the shared baseline for clinic staff who clock in and
// out but have no administrative capabilities.
var staffPermissions = []Permission{
	PermissionAttendanceCreate,
	PermissionAttendanceViewOwn,
	PermissionScheduleViewOwn,
}

// RolePermissions maps roles to their permissions. The mapping is static and
// resolved once per request at authorization time.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionWorkLocationManage,
		PermissionScheduleManage,
		PermissionScheduleViewOwn,
		PermissionReportsView,
		PermissionUserManage,
	},
	RoleManajer: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionScheduleViewOwn,
		PermissionReportsView,
	},
	RoleBendahara:   staffPermissions,
	RoleVerifikator: staffPermissions,
	RolePetugas:     staffPermissions,
	RoleParamedis:   staffPermissions,
	RoleDokter:      staffPermissions,
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
