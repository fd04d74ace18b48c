package user

import "fmt"

// Role is the access level assigned to a user at registration.
type Role string

const (
	// RoleStandard is the default role for self-registered users.
	RoleStandard Role = "standard"

	// RoleAdmin grants destructive operations such as product deletion.
	RoleAdmin Role = "admin"
)

// Roles lists every role the system knows about.
var Roles = []Role{RoleStandard, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStandard, RoleAdmin:
		return true
	}
	return false
}

// Authority returns the granted-authority name for the role. Each known role
// maps explicitly; unknown roles still get the ROLE_ prefix so permission
// tables never accidentally match a bare role name.
func (r Role) Authority() string {
	switch r {
	case RoleStandard:
		return "ROLE_standard"
	case RoleAdmin:
		return "ROLE_admin"
	default:
		return fmt.Sprintf("ROLE_%s", string(r))
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
