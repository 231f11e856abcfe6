package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines profile and identity data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*Profile, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*Profile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Profile, error)
	MarkEmailVerified(ctx context.Context, userID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*Identity, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// DeleteIdentity removes the auth record. Deleting an identity that is
	// already gone succeeds.
	DeleteIdentity(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates profile repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `SELECT * FROM profiles WHERE id = $1`
	var p Profile
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*Profile, error) {
	query := `SELECT * FROM profiles WHERE user_id = $1 AND organization_id = $2`
	var p Profile
	if err := r.db.GetContext(ctx, &p, query, userID, orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*Profile, error) {
	query := `SELECT * FROM profiles WHERE organization_id = $1 ORDER BY created_at`
	var profiles []*Profile
	if err := r.db.SelectContext(ctx, &profiles, query, orgID); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Profile, error) {
	query := `SELECT * FROM profiles WHERE user_id = $1 ORDER BY created_at`
	var profiles []*Profile
	if err := r.db.SelectContext(ctx, &profiles, query, userID); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE profiles SET email_verified = true, updated_at = $2 WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, time.Now())
	return err
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *repository) GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var identity Identity
	if err := r.db.GetContext(ctx, &identity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r *repository) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`
	var identity Identity
	if err := r.db.GetContext(ctx, &identity, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, passwordHash, time.Now())
	return err
}

func (r *repository) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
