package assignment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Assignment statuses. Cancellation is terminal: there is no transition
// out of StatusCancelled.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Recurrence types
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceOnce    = "once"
)

// Report statuses
const (
	ReportCompleted = "completed"
	ReportDeleted   = "deleted"
)

// TemplateAssignment binds a checklist template to a profile with a
// recurrence schedule. IsActive mirrors the status for cheap filtering:
// only StatusActive rows carry is_active = true.
type TemplateAssignment struct {
	ID             uuid.UUID    `db:"id"`
	TemplateID     uuid.UUID    `db:"template_id"`
	ProfileID      uuid.UUID    `db:"profile_id"`
	OrganizationID uuid.UUID    `db:"organization_id"`
	Status         string       `db:"status"`
	IsActive       bool         `db:"is_active"`
	RecurrenceType string       `db:"recurrence_type"`
	NextDueAt      sql.NullTime `db:"next_due_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// Report is a submitted checklist run. Deletion is soft so an admin can
// restore a report removed by mistake.
type Report struct {
	ID             uuid.UUID    `db:"id"`
	AssignmentID   uuid.UUID    `db:"assignment_id"`
	ProfileID      uuid.UUID    `db:"profile_id"`
	OrganizationID uuid.UUID    `db:"organization_id"`
	Status         string       `db:"status"`
	SubmittedAt    time.Time    `db:"submitted_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
	CreatedAt      time.Time    `db:"created_at"`
}
