package assignment

import (
	"context"

	"github.com/google/uuid"
)

// Service handles assignment business logic
type Service struct {
	repo Repository
}

// NewService creates assignment service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns an assignment visible to the caller's organization. An
// assignment in another organization reads as not found, never as
// forbidden.
func (s *Service) Get(ctx context.Context, callerOrgID, id uuid.UUID) (*TemplateAssignment, error) {
	a, err := s.repo.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.OrganizationID != callerOrgID {
		return nil, ErrNotFound
	}
	return a, nil
}

// List returns the caller organization's assignments
func (s *Service) List(ctx context.Context, orgID uuid.UUID, activeOnly bool) ([]*TemplateAssignment, error) {
	return s.repo.ListByOrganization(ctx, orgID, activeOnly)
}

// Cancel transitions an active assignment to cancelled and deactivates
// it. Cancelling an already cancelled assignment succeeds without doing
// anything; the transition is one-way so repeats cannot change state.
// A completed assignment is not cancellable.
func (s *Service) Cancel(ctx context.Context, callerOrgID, id uuid.UUID) (*TemplateAssignment, error) {
	a, err := s.Get(ctx, callerOrgID, id)
	if err != nil {
		return nil, err
	}

	switch a.Status {
	case StatusCancelled:
		return a, nil
	case StatusCompleted:
		return nil, ErrNotCancellable
	}

	if err := s.repo.CancelAssignment(ctx, id); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled
	a.IsActive = false
	return a, nil
}

// RestoreReport reverses a soft delete: the report returns to completed
// and its assignment is reactivated so the schedule resumes.
func (s *Service) RestoreReport(ctx context.Context, callerOrgID, reportID uuid.UUID) (*Report, error) {
	report, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil || report.OrganizationID != callerOrgID {
		return nil, ErrReportNotFound
	}
	if !report.DeletedAt.Valid {
		return nil, ErrNotDeleted
	}

	if err := s.repo.RestoreReport(ctx, reportID); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAssignment(ctx, report.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a != nil && a.Status == StatusCancelled {
		if err := s.repo.ReactivateAssignment(ctx, a.ID); err != nil {
			return nil, err
		}
	}

	report.Status = ReportCompleted
	report.DeletedAt.Valid = false
	return report, nil
}
