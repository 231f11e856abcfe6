package masteradmin

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/password"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
)

// MasterCredentials is the environment-sourced master-admin account
type MasterCredentials struct {
	Email    string
	Password string
}

// Service handles back-office business logic
type Service struct {
	repo   Repository
	master MasterCredentials
}

// NewService creates the back-office service
func NewService(repo Repository, master MasterCredentials) *Service {
	return &Service{repo: repo, master: master}
}

// Login authenticates a back-office operator and returns the session payload
// to sign. The master account comes from configuration; everyone else must
// hold an active superuser row.
func (s *Service) Login(ctx context.Context, email, pwd string) (*session.Payload, error) {
	if s.isMaster(email, pwd) {
		return &session.Payload{
			Email: s.master.Email,
			Role:  session.RoleMasterAdmin,
		}, nil
	}

	su, err := s.repo.GetSuperuserByEmail(ctx, email)
	if err != nil || su == nil {
		return nil, ErrInvalidCredentials
	}
	if !su.IsActive {
		return nil, ErrSuperuserInactive
	}
	if !password.Verify(pwd, su.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	_ = s.repo.UpdateLastLogin(ctx, su.ID)

	return &session.Payload{
		Email:         su.Email,
		Role:          session.RoleSuperuser,
		SuperuserRole: string(su.Role),
	}, nil
}

func (s *Service) isMaster(email, pwd string) bool {
	if s.master.Email == "" || s.master.Password == "" {
		return false
	}
	emailOK := strings.EqualFold(email, s.master.Email)
	pwdOK := subtle.ConstantTimeCompare([]byte(pwd), []byte(s.master.Password)) == 1
	return emailOK && pwdOK
}

// --- Superuser management ---

// CreateSuperuser adds a privileged operator
func (s *Service) CreateSuperuser(ctx context.Context, actor *session.Payload, req *CreateSuperuserRequest) (*Superuser, error) {
	existing, _ := s.repo.GetSuperuserByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	su := &Superuser{
		ID:           uuid.New(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         SuperuserRole(req.Role),
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateSuperuser(ctx, su); err != nil {
		return nil, err
	}

	s.Audit(ctx, actor, "superuser.create", "superuser", su.ID.String(), nil, su)
	return su, nil
}

// UpdateSuperuser modifies a privileged operator
func (s *Service) UpdateSuperuser(ctx context.Context, actor *session.Payload, id uuid.UUID, req *UpdateSuperuserRequest) (*Superuser, error) {
	su, err := s.repo.GetSuperuserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if su == nil {
		return nil, ErrSuperuserNotFound
	}

	oldValue := *su

	if req.FullName != nil {
		su.FullName = *req.FullName
	}
	if req.Role != nil {
		su.Role = SuperuserRole(*req.Role)
	}
	if req.IsActive != nil {
		su.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		su.PasswordHash = hash
	}

	if err := s.repo.UpdateSuperuser(ctx, su); err != nil {
		return nil, err
	}

	s.Audit(ctx, actor, "superuser.update", "superuser", su.ID.String(), &oldValue, su)
	return su, nil
}

// DeleteSuperuser removes a privileged operator
func (s *Service) DeleteSuperuser(ctx context.Context, actor *session.Payload, id uuid.UUID) error {
	su, err := s.repo.GetSuperuserByID(ctx, id)
	if err != nil {
		return err
	}
	if su == nil {
		return ErrSuperuserNotFound
	}

	if err := s.repo.DeleteSuperuser(ctx, id); err != nil {
		return err
	}

	s.Audit(ctx, actor, "superuser.delete", "superuser", id.String(), su, nil)
	return nil
}

// ListSuperusers returns every privileged operator
func (s *Service) ListSuperusers(ctx context.Context) ([]*Superuser, error) {
	return s.repo.ListSuperusers(ctx)
}

// ListAuditLogs returns audit entries matching the filter
func (s *Service) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]*AuditLog, int, error) {
	return s.repo.ListAuditLogs(ctx, filter)
}

// Audit records a master action. Failures are logged, not surfaced: an
// audit write must never fail the action it describes.
func (s *Service) Audit(ctx context.Context, actor *session.Payload, action, entityType, entityID string, oldValue, newValue interface{}) {
	entry := &AuditLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		CreatedAt:  time.Now(),
	}
	if actor != nil {
		entry.ActorEmail = actor.Email
	}
	if entityID != "" {
		entry.EntityID = sql.NullString{String: entityID, Valid: true}
	}
	if ip := middleware.GetClientIP(ctx); ip != "" {
		entry.IPAddress = sql.NullString{String: ip, Valid: true}
	}
	if oldValue != nil {
		if raw, err := json.Marshal(oldValue); err == nil {
			entry.OldValue = raw
		}
	}
	if newValue != nil {
		if raw, err := json.Marshal(newValue); err == nil {
			entry.NewValue = raw
		}
	}

	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}
