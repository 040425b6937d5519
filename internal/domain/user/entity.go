package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a community member account
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`

	// Profile
	FirstName    string        `db:"first_name"`
	LastName     string        `db:"last_name"`
	Bio          string        `db:"bio"`
	Location     string        `db:"location"`
	BirthDate    sql.NullTime  `db:"birth_date"`
	AvatarFileID uuid.NullUUID `db:"avatar_file_id"`

	// IsActive flips to false when the account is banned; accounts are
	// never hard-deleted.
	IsActive bool `db:"is_active"`
	IsStaff  bool `db:"is_staff"`

	// Timestamps
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FullName returns the display name, falling back to the username
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
