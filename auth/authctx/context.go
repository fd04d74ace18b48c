// Package authctx carries the authenticated principal through a request's
// context. A request with no principal is anonymous; handlers that need an
// identity check for one explicitly and fail with an authorization error,
// never by panicking on a missing value.
package authctx

import (
	"context"

	"github.com/skillsenselab/secureapi/user"
)

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and the account re-fetched.
type Principal struct {
	// Username is the account's unique name, taken from the token subject.
	Username string

	// Role is the account's role as currently stored, not as it was when
	// the token was issued.
	Role user.Role

	// Authority is the granted-authority name derived from Role.
	Authority string
}

type contextKey struct{}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal attached to ctx, if any. The second
// return value is false for anonymous requests.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// IsAuthenticated reports whether ctx carries a principal.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := FromContext(ctx)
	return ok
}

// Username returns the principal's username, or "" for anonymous requests.
func Username(ctx context.Context) string {
	if p, ok := FromContext(ctx); ok {
		return p.Username
	}
	return ""
}
