package user

import (
	"context"

	"github.com/skillsenselab/secureapi/database"
)

// GormStore persists users through the shared database handle.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a user store backed by the given database.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

// FindByUsername returns the user with the exact username.
func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &u, nil
}

// Create persists a new user.
func (s *GormStore) Create(ctx context.Context, u *User) (*User, error) {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return u, nil
}
