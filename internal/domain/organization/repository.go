package organization

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines organization data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	List(ctx context.Context, includeArchived bool) ([]*Organization, error)
	Archive(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, id uuid.UUID) ([]Member, error)

	// PurgeTenant deletes every row the organization owns plus the
	// organization itself, in one transaction. Safe to call on an already
	// purged tenant: deleting zero rows is not an error.
	PurgeTenant(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates organization repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Organization, error) {
	query := `SELECT * FROM organizations WHERE id = $1`
	var org Organization
	err := r.db.GetContext(ctx, &org, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) List(ctx context.Context, includeArchived bool) ([]*Organization, error) {
	query := `SELECT * FROM organizations`
	if !includeArchived {
		query += ` WHERE is_archived = false`
	}
	query += ` ORDER BY created_at DESC`

	var orgs []*Organization
	if err := r.db.SelectContext(ctx, &orgs, query); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) Archive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE organizations SET is_archived = true, updated_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *repository) ListMembers(ctx context.Context, id uuid.UUID) ([]Member, error) {
	query := `SELECT id, user_id, email FROM profiles WHERE organization_id = $1 ORDER BY created_at`
	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, id); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) PurgeTenant(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM submitted_reports WHERE organization_id = $1`,
		`DELETE FROM template_assignments WHERE organization_id = $1`,
		`DELETE FROM checklist_templates WHERE organization_id = $1`,
		`DELETE FROM subscriptions WHERE organization_id = $1`,
		`DELETE FROM payments WHERE organization_id = $1`,
		`DELETE FROM profiles WHERE organization_id = $1`,
		`DELETE FROM organizations WHERE id = $1`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}
