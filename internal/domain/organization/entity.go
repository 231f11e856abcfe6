package organization

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary. Every profile, assignment, report
// and subscription row carries its organization_id.
type Organization struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Slug       string         `db:"slug" json:"slug"`
	LogoURL    sql.NullString `db:"logo_url" json:"logo_url,omitempty"`
	IsArchived bool           `db:"is_archived" json:"is_archived"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// Member is the slice of a profile the teardown needs
type Member struct {
	ProfileID uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
}
