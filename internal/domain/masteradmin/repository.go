package masteradmin

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines master back-office data access
type Repository interface {
	// Superusers
	CreateSuperuser(ctx context.Context, su *Superuser) error
	GetSuperuserByID(ctx context.Context, id uuid.UUID) (*Superuser, error)
	GetSuperuserByEmail(ctx context.Context, email string) (*Superuser, error)
	ListSuperusers(ctx context.Context) ([]*Superuser, error)
	UpdateSuperuser(ctx context.Context, su *Superuser) error
	DeleteSuperuser(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// Audit logs
	CreateAuditLog(ctx context.Context, entry *AuditLog) error
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]*AuditLog, int, error)
}

// AuditFilter for filtering audit logs
type AuditFilter struct {
	ActorEmail *string
	Action     *string
	EntityType *string
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates master back-office repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSuperuser(ctx context.Context, su *Superuser) error {
	query := `
		INSERT INTO superusers (id, email, password_hash, role, full_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		su.ID,
		su.Email,
		su.PasswordHash,
		su.Role,
		su.FullName,
		su.IsActive,
		su.CreatedAt,
		su.UpdatedAt,
	)
	return err
}

func (r *repository) GetSuperuserByID(ctx context.Context, id uuid.UUID) (*Superuser, error) {
	query := `SELECT * FROM superusers WHERE id = $1`
	var su Superuser
	err := r.db.GetContext(ctx, &su, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &su, nil
}

func (r *repository) GetSuperuserByEmail(ctx context.Context, email string) (*Superuser, error) {
	query := `SELECT * FROM superusers WHERE lower(email) = lower($1)`
	var su Superuser
	err := r.db.GetContext(ctx, &su, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &su, nil
}

func (r *repository) ListSuperusers(ctx context.Context) ([]*Superuser, error) {
	query := `SELECT * FROM superusers ORDER BY created_at DESC`
	var superusers []*Superuser
	if err := r.db.SelectContext(ctx, &superusers, query); err != nil {
		return nil, err
	}
	return superusers, nil
}

func (r *repository) UpdateSuperuser(ctx context.Context, su *Superuser) error {
	query := `
		UPDATE superusers
		SET email = $2, password_hash = $3, role = $4, full_name = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		su.ID,
		su.Email,
		su.PasswordHash,
		su.Role,
		su.FullName,
		su.IsActive,
		time.Now(),
	)
	return err
}

func (r *repository) DeleteSuperuser(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM superusers WHERE id = $1`, id)
	return err
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE superusers SET last_login_at = $2 WHERE id = $1`, id, time.Now())
	return err
}

func (r *repository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	query := `
		INSERT INTO master_audit_logs (id, actor_email, action, entity_type, entity_id, old_value, new_value, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ActorEmail,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.OldValue,
		entry.NewValue,
		entry.IPAddress,
		entry.CreatedAt,
	)
	return err
}

func (r *repository) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]*AuditLog, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	add := func(clause string, value interface{}) {
		where += clause
		args = append(args, value)
		idx++
	}

	if filter.ActorEmail != nil {
		add(` AND actor_email = $`+strconv.Itoa(idx), *filter.ActorEmail)
	}
	if filter.Action != nil {
		add(` AND action = $`+strconv.Itoa(idx), *filter.Action)
	}
	if filter.EntityType != nil {
		add(` AND entity_type = $`+strconv.Itoa(idx), *filter.EntityType)
	}
	if filter.FromDate != nil {
		add(` AND created_at >= $`+strconv.Itoa(idx), *filter.FromDate)
	}
	if filter.ToDate != nil {
		add(` AND created_at <= $`+strconv.Itoa(idx), *filter.ToDate)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM master_audit_logs`+where, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT * FROM master_audit_logs` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(idx) + ` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, limit, filter.Offset)

	var logs []*AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
