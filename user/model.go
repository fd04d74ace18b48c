// Package user defines the account model and its persistence interface.
package user

import (
	"github.com/skillsenselab/secureapi/database"
)

// User is a registered account. The password digest never leaves the
// service; it is excluded from JSON and only compared inside the
// credential verifier.
type User struct {
	database.BaseModel

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"type:text;not null" json:"role"`
}

// TableName overrides the default table name.
func (User) TableName() string { return "users" }

// Authority returns the granted-authority name for this user's role.
func (u *User) Authority() string { return u.Role.Authority() }
