package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role is the platform-level role of an account.
type Role string

const (
	RoleSiteOwner Role = "SITE_OWNER"
	RoleSiteAdmin Role = "SITE_ADMIN"
	RoleCustomer  Role = "CUSTOMER"
	RoleCreative  Role = "CREATIVE"
)

// IsAdmin reports whether the role carries platform admin rights.
func (r Role) IsAdmin() bool {
	return r == RoleSiteOwner || r == RoleSiteAdmin
}

// User represents a platform account
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Name         string         `db:"name" json:"name"`
	Role         Role           `db:"role" json:"role"`
	DemoPersona  sql.NullString `db:"demo_persona" json:"-"`

	// Creative availability pause. Expiry is evaluated lazily at read
	// time; there is no background job clearing it.
	PausedAt       sql.NullTime `db:"paused_at" json:"paused_at,omitempty"`
	PauseExpiresAt sql.NullTime `db:"pause_expires_at" json:"pause_expires_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsPaused reports whether a creative is currently paused
func (u *User) IsPaused() bool {
	if !u.PausedAt.Valid {
		return false
	}
	if u.PauseExpiresAt.Valid && time.Now().After(u.PauseExpiresAt.Time) {
		return false
	}
	return true
}
