package rbac

// Permission is a named capability checked before an operation is offered.
type Permission string

const (
	PermManageAllUsers     Permission = "manage_all_users"
	PermManageCompanyUsers Permission = "manage_company_users"
	PermManageCompanies    Permission = "manage_companies"
	PermAssignTasks        Permission = "assign_tasks"
	PermViewAllTasks       Permission = "view_all_tasks"
	PermViewCompanyTasks   Permission = "view_company_tasks"
	PermViewOwnTasks       Permission = "view_own_tasks"
	PermUpdateOwnTasks     Permission = "update_own_tasks"
	PermViewAnalytics      Permission = "view_analytics"
)

// rolePermissions is the static Role → Permission table. It is total: every
// role is present, and it is never mutated after init.
var rolePermissions = map[Role]map[Permission]bool{
	RoleSuperAdmin: {
		PermManageAllUsers:     true,
		PermManageCompanyUsers: true,
		PermManageCompanies:    true,
		PermAssignTasks:        true,
		PermViewAllTasks:       true,
		PermViewCompanyTasks:   true,
		PermViewOwnTasks:       true,
		PermUpdateOwnTasks:     true,
		PermViewAnalytics:      true,
	},
	RoleAdmin: {
		PermManageCompanyUsers: true,
		PermAssignTasks:        true,
		PermViewCompanyTasks:   true,
		PermViewOwnTasks:       true,
		PermUpdateOwnTasks:     true,
		PermViewAnalytics:      true,
	},
	RoleUser: {
		PermViewOwnTasks:   true,
		PermUpdateOwnTasks: true,
		PermViewAnalytics:  true,
	},
}

// HasPermission reports whether the subject holds the named permission.
// An unauthenticated subject holds nothing, regardless of role.
func HasPermission(sub Subject, perm Permission) bool {
	if !sub.Authenticated {
		return false
	}
	perms, ok := rolePermissions[sub.Role]
	if !ok {
		return false
	}
	return perms[perm]
}

// PermissionsFor returns a copy of the permission set for a role.
func PermissionsFor(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, 0, len(perms))
	for p, ok := range perms {
		if ok {
			out = append(out, p)
		}
	}
	return out
}
