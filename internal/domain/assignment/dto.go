package assignment

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentResponse represents an assignment in the API
type AssignmentResponse struct {
	ID             uuid.UUID `json:"id"`
	TemplateID     uuid.UUID `json:"template_id"`
	ProfileID      uuid.UUID `json:"profile_id"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"is_active"`
	RecurrenceType string    `json:"recurrence_type"`
	NextDueAt      *string   `json:"next_due_at,omitempty"`
	CreatedAt      string    `json:"created_at"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(a *TemplateAssignment) *AssignmentResponse {
	resp := &AssignmentResponse{
		ID:             a.ID,
		TemplateID:     a.TemplateID,
		ProfileID:      a.ProfileID,
		Status:         a.Status,
		IsActive:       a.IsActive,
		RecurrenceType: a.RecurrenceType,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
	if a.NextDueAt.Valid {
		v := a.NextDueAt.Time.Format(time.RFC3339)
		resp.NextDueAt = &v
	}
	return resp
}

// ReportResponse represents a submitted report in the API
type ReportResponse struct {
	ID           uuid.UUID `json:"id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	Status       string    `json:"status"`
	SubmittedAt  string    `json:"submitted_at"`
}

// ReportResponseFromEntity converts entity to response
func ReportResponseFromEntity(r *Report) *ReportResponse {
	return &ReportResponse{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		ProfileID:    r.ProfileID,
		Status:       r.Status,
		SubmittedAt:  r.SubmittedAt.Format(time.RFC3339),
	}
}
