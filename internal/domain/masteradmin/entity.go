package masteradmin

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SuperuserRole tags what a superuser is allowed to do besides the
// baseline back-office access.
type SuperuserRole string

const (
	SuperuserSupport    SuperuserRole = "support"
	SuperuserBilling    SuperuserRole = "billing"
	SuperuserOperations SuperuserRole = "operations"
)

// Superuser is a privileged operator below master admin, stored in its own
// table. Refund capability is decided by this row, never by a literal
// email comparison.
type Superuser struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Email        string        `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`
	Role         SuperuserRole `db:"role" json:"role"`
	FullName     string        `db:"full_name" json:"full_name"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	LastLoginAt  sql.NullTime  `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// CanRefund reports whether this superuser row grants refund capability
func (s *Superuser) CanRefund() bool {
	return s.IsActive && (s.Role == SuperuserBilling || s.Role == SuperuserOperations)
}

// AuditLog records one master-admin action
type AuditLog struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ActorEmail string          `db:"actor_email" json:"actor_email"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   sql.NullString  `db:"entity_id" json:"entity_id,omitempty"`
	OldValue   json.RawMessage `db:"old_value" json:"old_value,omitempty"`
	NewValue   json.RawMessage `db:"new_value" json:"new_value,omitempty"`
	IPAddress  sql.NullString  `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
