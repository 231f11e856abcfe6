package organization

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationResponse represents an organization in the API
type OrganizationResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	LogoURL    *string   `json:"logo_url,omitempty"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  string    `json:"created_at"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(org *Organization) *OrganizationResponse {
	resp := &OrganizationResponse{
		ID:         org.ID,
		Name:       org.Name,
		Slug:       org.Slug,
		IsArchived: org.IsArchived,
		CreatedAt:  org.CreatedAt.Format(time.RFC3339),
	}
	if org.LogoURL.Valid {
		resp.LogoURL = &org.LogoURL.String
	}
	return resp
}

// MemberOutcome reports the teardown result for one member
type MemberOutcome struct {
	Email   string `json:"email"`
	Removed bool   `json:"removed"`
	Error   string `json:"error,omitempty"`
}

// DeletionReport makes the multi-step delete explicit: which member
// identities were removed, which failed, and whether the organization row
// itself was deleted. A partial run is safe to retry.
type DeletionReport struct {
	OrganizationID      uuid.UUID       `json:"organization_id"`
	Members             []MemberOutcome `json:"members"`
	IdentitiesRemoved   int             `json:"identities_removed"`
	IdentitiesFailed    int             `json:"identities_failed"`
	OrganizationDeleted bool            `json:"organization_deleted"`
}
