// Package rbac implements the role and permission model used to gate every
// screen and operation in the client.
//
// The role set is a closed enumeration owned by the backend; the permission
// table is a static, total mapping that never changes at runtime. A tenant
// ("company") login is not a fourth role: the authentication flow normalizes
// it to RoleAdmin scoped to the company.
package rbac

import "fmt"

// Role is the coarse-grained capability level of an authenticated subject.
type Role string

const (
	// RoleSuperAdmin has unrestricted, cross-tenant access.
	RoleSuperAdmin Role = "super_admin"

	// RoleAdmin manages users and tasks within a single company.
	RoleAdmin Role = "admin"

	// RoleUser works on tasks assigned to them.
	RoleUser Role = "user"
)

// ParseRole validates a wire-format role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the closed enumeration.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Subject is the minimal view of a session the guard needs: whether it is
// authenticated, and with which role. Every check starts from a Subject so
// the guard stays stateless and recomputable on every call.
type Subject struct {
	Authenticated bool
	Role          Role
}

// Anonymous is the subject of an unauthenticated session.
var Anonymous = Subject{}
