package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines assignment and report data access
type Repository interface {
	GetAssignment(ctx context.Context, id uuid.UUID) (*TemplateAssignment, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, activeOnly bool) ([]*TemplateAssignment, error)
	CancelAssignment(ctx context.Context, id uuid.UUID) error
	ReactivateAssignment(ctx context.Context, id uuid.UUID) error

	GetReport(ctx context.Context, id uuid.UUID) (*Report, error)
	RestoreReport(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates assignment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAssignment(ctx context.Context, id uuid.UUID) (*TemplateAssignment, error) {
	query := `SELECT * FROM template_assignments WHERE id = $1`
	var a TemplateAssignment
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByOrganization(ctx context.Context, orgID uuid.UUID, activeOnly bool) ([]*TemplateAssignment, error) {
	query := `SELECT * FROM template_assignments WHERE organization_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	var assignments []*TemplateAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, orgID); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) CancelAssignment(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE template_assignments
		SET status = $2, is_active = false, updated_at = $3
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, StatusCancelled, time.Now())
	return err
}

func (r *repository) ReactivateAssignment(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE template_assignments
		SET status = $2, is_active = true, updated_at = $3
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, StatusActive, time.Now())
	return err
}

func (r *repository) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM submitted_reports WHERE id = $1`
	var report Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) RestoreReport(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE submitted_reports
		SET status = $2, deleted_at = NULL
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, ReportCompleted)
	return err
}
