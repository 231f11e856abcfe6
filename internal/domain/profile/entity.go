package profile

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Profile roles within an organization
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Profile is one user's membership in one organization. A single auth
// identity (email) may hold profiles in several organizations, each with
// its own role.
type Profile struct {
	ID             uuid.UUID    `db:"id"`
	UserID         uuid.UUID    `db:"user_id"`
	OrganizationID uuid.UUID    `db:"organization_id"`
	Email          string       `db:"email"`
	FullName       string       `db:"full_name"`
	Role           string       `db:"role"`
	EmailVerified  bool         `db:"email_verified"`
	IsActive       bool         `db:"is_active"`
	LastSeenAt     sql.NullTime `db:"last_seen_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// Identity is the auth record behind a user, shared by all of their
// profiles.
type Identity struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
