package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Display name, not unique
	Email        string    `json:"email" db:"email"`           // Unique across all users
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// UserProfile is the public projection of a user returned to clients.
type UserProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// NewUserProfile builds the client-safe projection of a user record.
func NewUserProfile(u *UserDB) UserProfile {
	return UserProfile{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}
