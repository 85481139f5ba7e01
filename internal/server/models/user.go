package models

import "time"

// User roles. Role is always one of these two values.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account row. Email is stored lowercased, uniqueness is enforced
// by the database. ResetToken/ResetTokenExpiresAt hold at most one live
// password-reset token and are nil otherwise.
type User struct {
	ID                  string
	Email               string
	Name                string
	PasswordDigest      string
	Role                string
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
