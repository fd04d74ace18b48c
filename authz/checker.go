// Package authz decides whether an authority may perform an operation.
// Decisions are pure table lookups and never touch the store; by the time a
// check runs the request's identity has already been verified.
package authz

import "github.com/skillsenselab/secureapi/user"

// Checker answers permission checks for an authority.
//
// authority is the granted-authority name (e.g. "ROLE_admin");
// permission uses the "resource:action" format (e.g. "product:delete").
type Checker interface {
	HasPermission(authority string, permission string) bool
}

// CheckerFunc is an adapter to use ordinary functions as Checker.
type CheckerFunc func(authority string, permission string) bool

// HasPermission implements Checker.
func (f CheckerFunc) HasPermission(authority string, permission string) bool {
	return f(authority, permission)
}

// MapChecker is an in-memory Checker backed by a map of authority to
// permission patterns. Supports wildcard matching via MatchPattern.
type MapChecker struct {
	permissions map[string][]string
}

// NewMapChecker creates a Checker from a static map of authority to
// permission patterns.
func NewMapChecker(permissions map[string][]string) *MapChecker {
	return &MapChecker{permissions: permissions}
}

// HasPermission implements Checker. Unknown authorities hold no
// permissions at all.
func (c *MapChecker) HasPermission(authority string, required string) bool {
	patterns, ok := c.permissions[authority]
	if !ok {
		return false
	}
	return MatchAny(patterns, required)
}

// Catalog permissions.
const (
	PermProductRead   = "product:read"
	PermProductCreate = "product:create"
	PermProductDelete = "product:delete"
)

// DefaultChecker returns the service's permission table. Standard users can
// browse and add products; only admins can delete them.
func DefaultChecker() *MapChecker {
	return NewMapChecker(map[string][]string{
		user.RoleAdmin.Authority():    {"product:*"},
		user.RoleStandard.Authority(): {PermProductRead, PermProductCreate},
	})
}
