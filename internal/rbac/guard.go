package rbac

// Guard answers capability and route-access questions for the current
// session. It holds no state of its own beyond the route table; every answer
// is derived fresh from the subject passed in.
type Guard struct {
	routes *RouteTable
}

// NewGuard creates a guard over the given route table.
func NewGuard(routes *RouteTable) *Guard {
	return &Guard{routes: routes}
}

// HasPermission reports whether the subject holds the named permission.
func (g *Guard) HasPermission(sub Subject, perm Permission) bool {
	return HasPermission(sub, perm)
}

// CanAccessRoute reports whether the subject may view the route.
func (g *Guard) CanAccessRoute(sub Subject, route string) bool {
	return g.routes.CanAccessRoute(sub, route)
}

// Convenience groups: ORs over related permissions, mirroring what feature
// components actually ask.

// CanManageUsers is true for anyone who can manage users at any scope.
func (g *Guard) CanManageUsers(sub Subject) bool {
	return HasPermission(sub, PermManageAllUsers) || HasPermission(sub, PermManageCompanyUsers)
}

// CanManageCompanies is true only for cross-tenant administrators.
func (g *Guard) CanManageCompanies(sub Subject) bool {
	return HasPermission(sub, PermManageCompanies)
}

// CanAssignTasks is true for anyone who may create tasks for others.
func (g *Guard) CanAssignTasks(sub Subject) bool {
	return HasPermission(sub, PermAssignTasks)
}

// CanViewTeamTasks is true for anyone whose task list extends beyond their
// own assignments.
func (g *Guard) CanViewTeamTasks(sub Subject) bool {
	return HasPermission(sub, PermViewAllTasks) || HasPermission(sub, PermViewCompanyTasks)
}
