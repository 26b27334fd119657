package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile   Permission = "profile.view_own"
	PermissionRevenueRecordOwn Permission = "revenue.record_own"
	PermissionAlertViewOwn     Permission = "alert.view_own"
	PermissionSalaryViewOwn    Permission = "salary.view_own"
	PermissionAnalyticsView    Permission = "analytics.view"

	// Salon management
	PermissionUserManage     Permission = "user.manage"
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionCatalogManage  Permission = "catalog.manage"
	PermissionExpenseManage  Permission = "expense.manage"
	PermissionChargeManage   Permission = "charge.manage"
	PermissionGoalManage     Permission = "goal.manage"
	PermissionSalaryGenerate Permission = "salary.generate"
	PermissionAlertCreate    Permission = "alert.create"
	PermissionDashboardView  Permission = "dashboard.view"
	PermissionRevenueViewAll Permission = "revenue.view_all"
	PermissionJobTrigger     Permission = "job.trigger"
)

var selfService = []Permission{
	PermissionViewOwnProfile,
	PermissionRevenueRecordOwn,
	PermissionAlertViewOwn,
	PermissionSalaryViewOwn,
	PermissionAnalyticsView,
}

var management = []Permission{
	PermissionUserManage,
	PermissionEmployeeManage,
	PermissionCatalogManage,
	PermissionExpenseManage,
	PermissionChargeManage,
	PermissionGoalManage,
	PermissionSalaryGenerate,
	PermissionAlertCreate,
	PermissionDashboardView,
	PermissionRevenueViewAll,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: append(append(append([]Permission{}, selfService...), management...), PermissionJobTrigger),
	RoleAdmin:      append(append([]Permission{}, selfService...), management...),
	RoleUser:       selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
