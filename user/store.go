package user

import "context"

// Store is the persistence interface for user accounts. Implementations
// must keep infrastructure failures distinct from lookups that found
// nothing: a not-found result is a NOT_FOUND application error, never a
// connectivity error, and vice versa.
type Store interface {
	// FindByUsername returns the user with the exact (case-sensitive)
	// username, or a NOT_FOUND error.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new user. A duplicate username yields an
	// ALREADY_EXISTS error.
	Create(ctx context.Context, u *User) (*User, error)
}
