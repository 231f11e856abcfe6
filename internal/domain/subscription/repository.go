package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines subscription and payment data access
type Repository interface {
	GetByOrganization(ctx context.Context, orgID uuid.UUID) (*Subscription, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) error

	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, orgID uuid.UUID) ([]*Payment, error)
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates subscription repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByOrganization(ctx context.Context, orgID uuid.UUID) (*Subscription, error) {
	query := `SELECT * FROM subscriptions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT 1`
	var s Subscription
	if err := r.db.GetContext(ctx, &s, query, orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	query := `SELECT * FROM subscriptions WHERE id = $1`
	var s Subscription
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE subscriptions
		SET status = $2, cancel_at_period_end = true, updated_at = $3
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, StatusCancelled, time.Now())
	return err
}

func (r *repository) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	query := `SELECT * FROM payments WHERE id = $1`
	var p Payment
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPayments(ctx context.Context, orgID uuid.UUID) ([]*Payment, error) {
	query := `SELECT * FROM payments WHERE organization_id = $1 ORDER BY paid_at DESC`
	var payments []*Payment
	if err := r.db.SelectContext(ctx, &payments, query, orgID); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE payments SET status = $2, refunded_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, PaymentRefunded, time.Now())
	return err
}
