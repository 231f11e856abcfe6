package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IdentityDeleter removes a user's auth identity from the identity
// provider. DeleteIdentity must be idempotent: deleting an identity that
// is already gone succeeds.
type IdentityDeleter interface {
	DeleteIdentity(ctx context.Context, userID uuid.UUID) error
}

// ErrPartialDeletion marks a teardown that removed some member identities
// but not all. The accompanying DeletionReport says which.
var ErrPartialDeletion = errors.New("organization deletion incomplete")

// Service handles organization business logic
type Service struct {
	repo       Repository
	identities IdentityDeleter
}

// NewService creates organization service
func NewService(repo Repository, identities IdentityDeleter) *Service {
	return &Service{repo: repo, identities: identities}
}

// GetByID returns an organization
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Organization, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrNotFound
	}
	return org, nil
}

// List returns organizations, optionally including archived tenants
func (s *Service) List(ctx context.Context, includeArchived bool) ([]*Organization, error) {
	return s.repo.List(ctx, includeArchived)
}

// Archive soft-flags an organization. Data stays in place.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) error {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if org == nil {
		return ErrNotFound
	}
	if org.IsArchived {
		return ErrAlreadyArchived
	}
	return s.repo.Archive(ctx, id)
}

// Delete hard-removes an organization: every member's auth identity first,
// then all tenant rows and the organization itself in one transaction.
//
// Identity deletions run sequentially with per-member accounting. When any
// of them fails the tenant rows are left untouched and the report names
// exactly which members were removed. The operation can be retried: each
// step is a no-op against already-deleted state.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*DeletionReport, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrNotFound
	}

	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &DeletionReport{
		OrganizationID: id,
		Members:        make([]MemberOutcome, 0, len(members)),
	}

	for _, m := range members {
		outcome := MemberOutcome{Email: m.Email}
		if err := s.identities.DeleteIdentity(ctx, m.UserID); err != nil {
			log.Error().Err(err).
				Str("organization_id", id.String()).
				Str("user_id", m.UserID.String()).
				Msg("Failed to delete member auth identity")
			outcome.Error = "identity deletion failed"
			report.IdentitiesFailed++
		} else {
			outcome.Removed = true
			report.IdentitiesRemoved++
		}
		report.Members = append(report.Members, outcome)
	}

	if report.IdentitiesFailed > 0 {
		return report, ErrPartialDeletion
	}

	if err := s.repo.PurgeTenant(ctx, id); err != nil {
		return report, err
	}
	report.OrganizationDeleted = true
	return report, nil
}
