package rbac

import "github.com/taskflowhq/taskflow/internal/log"

// RouteTable maps route identifiers to the roles allowed to view them.
//
// A route with no configured rule follows the table's default policy. The
// historic behavior is fail-open (unmapped means allowed); that default is
// preserved but must now be chosen explicitly via access.default_policy so
// deployments can opt into deny-by-default.
type RouteTable struct {
	rules        map[string][]Role
	defaultAllow bool
	logger       *log.Logger
}

// NewRouteTable builds a table from explicit rules.
func NewRouteTable(rules map[string][]Role, defaultAllow bool) *RouteTable {
	copied := make(map[string][]Role, len(rules))
	for route, roles := range rules {
		copied[route] = append([]Role(nil), roles...)
	}
	return &RouteTable{
		rules:        copied,
		defaultAllow: defaultAllow,
		logger:       log.DefaultLogger().With("component", "rbac"),
	}
}

// DefaultRouteTable returns the shipped screen → role mapping.
func DefaultRouteTable(defaultAllow bool) *RouteTable {
	return NewRouteTable(map[string][]Role{
		"/dashboard":     {RoleSuperAdmin, RoleAdmin, RoleUser},
		"/tasks":         {RoleSuperAdmin, RoleAdmin, RoleUser},
		"/tasks/new":     {RoleSuperAdmin, RoleAdmin},
		"/users":         {RoleSuperAdmin, RoleAdmin},
		"/companies":     {RoleSuperAdmin},
		"/notifications": {RoleSuperAdmin, RoleAdmin, RoleUser},
		"/profile":       {RoleSuperAdmin, RoleAdmin, RoleUser},
	}, defaultAllow)
}

// CanAccessRoute reports whether the subject may view the route.
// Unauthenticated subjects are always denied. Mapped routes require the
// subject's role to be in the rule's set; unmapped routes follow the
// default policy.
func (t *RouteTable) CanAccessRoute(sub Subject, route string) bool {
	if !sub.Authenticated {
		return false
	}

	roles, ok := t.rules[route]
	if !ok {
		t.logger.Debug("route has no access rule, applying default policy",
			"route", route, "allowed", t.defaultAllow)
		return t.defaultAllow
	}

	for _, r := range roles {
		if r == sub.Role {
			return true
		}
	}
	return false
}

// Routes returns the configured route identifiers.
func (t *RouteTable) Routes() []string {
	out := make([]string, 0, len(t.rules))
	for route := range t.rules {
		out = append(out, route)
	}
	return out
}
