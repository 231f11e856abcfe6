package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/email"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/jwt"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/password"
)

const (
	verifyTokenTTL   = 24 * time.Hour
	resetTokenTTL    = 1 * time.Hour
	verifyKeyPrefix  = "verify:"
	resetKeyPrefix   = "pwreset:"
	refreshKeyPrefix = "refresh:"
)

// Service handles profile and identity business logic
type Service struct {
	repo       Repository
	redis      *redis.Client // nil if Redis disabled
	jwtService *jwt.Service
	mailer     email.Sender
	siteURL    string
}

// NewService creates profile service
func NewService(repo Repository, redisClient *redis.Client, jwtService *jwt.Service, mailer email.Sender, siteURL string) *Service {
	return &Service{
		repo:       repo,
		redis:      redisClient,
		jwtService: jwtService,
		mailer:     mailer,
		siteURL:    siteURL,
	}
}

// Login verifies identity credentials and issues a token pair scoped to
// one membership. Without an organization the first active membership is
// used; the client can switch afterwards.
func (s *Service) Login(ctx context.Context, emailAddr, plainPassword string, orgID *uuid.UUID) (*LoginResponse, error) {
	identity, err := s.repo.GetIdentityByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if identity == nil || !password.Verify(plainPassword, identity.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	p, err := s.resolveMembership(ctx, identity.ID, orgID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, p)
}

// Refresh rotates a refresh token and issues a fresh token pair. The
// presented token is revoked first, so replaying it fails.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if err := s.consumeRefreshToken(ctx, refreshToken, claims.UserID); err != nil {
		return nil, err
	}

	p, err := s.resolveMembership(ctx, claims.UserID, nil)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, p)
}

func (s *Service) resolveMembership(ctx context.Context, userID uuid.UUID, orgID *uuid.UUID) (*Profile, error) {
	if orgID != nil {
		p, err := s.repo.GetByUserAndOrg(ctx, userID, *orgID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive {
			return nil, ErrNoMembership
		}
		return p, nil
	}

	profiles, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.IsActive {
			return p, nil
		}
	}
	return nil, ErrNoMembership
}

func (s *Service) issueTokens(ctx context.Context, p *Profile) (*LoginResponse, error) {
	access, err := s.jwtService.GenerateAccessToken(p.UserID, p.ID, p.OrganizationID, p.Role)
	if err != nil {
		return nil, err
	}
	refresh, _, _, err := s.jwtService.GenerateRefreshToken(p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, refresh, p.UserID); err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		RedirectPath: redirectPathForRole(p.Role),
		Profile:      ResponseFromEntity(p),
	}, nil
}

// Get returns a profile visible to the caller's organization. A profile in
// another organization reads as not found, never as forbidden.
func (s *Service) Get(ctx context.Context, callerOrgID, profileID uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OrganizationID != callerOrgID {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListByOrganization returns all profiles in the caller's organization
func (s *Service) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*Profile, error) {
	return s.repo.ListByOrganization(ctx, orgID)
}

// DeleteUser removes every profile of a user and their auth identity.
// Master back-office operation.
func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.DeleteIdentity(ctx, userID)
}

// DeleteIdentity removes only the auth record. Used by organization
// teardown, which deletes profile rows itself in its tenant purge.
func (s *Service) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteIdentity(ctx, userID)
}

// RequestEmailVerification issues a one-time token and mails the link
func (s *Service) RequestEmailVerification(ctx context.Context, userID uuid.UUID) error {
	identity, err := s.repo.GetIdentityByID(ctx, userID)
	if err != nil {
		return err
	}
	if identity == nil {
		return ErrIdentityNotFound
	}

	token, err := jwt.GenerateOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.storeToken(ctx, verifyKeyPrefix+token, userID, verifyTokenTTL); err != nil {
		return err
	}

	name := s.displayName(ctx, userID)
	return s.mailer.SendTemplate(ctx, identity.Email, name, "verify_email", "Verify your email", map[string]string{
		"Name":      name,
		"VerifyURL": s.siteURL + "/verify-email?token=" + token,
	})
}

// VerifyEmail consumes a verification token and marks every profile of the
// user verified
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.consumeToken(ctx, verifyKeyPrefix+token)
	if err != nil {
		return err
	}
	return s.repo.MarkEmailVerified(ctx, userID)
}

// ChangePassword verifies the current password and sets a new one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	identity, err := s.repo.GetIdentityByID(ctx, userID)
	if err != nil {
		return err
	}
	if identity == nil {
		return ErrIdentityNotFound
	}
	if !password.Verify(currentPassword, identity.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

// RequestPasswordReset issues a one-time reset token and mails the link.
// An unknown email is not an error: the response must not reveal whether
// an account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	identity, err := s.repo.GetIdentityByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if identity == nil {
		return nil
	}

	token, err := jwt.GenerateOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.storeToken(ctx, resetKeyPrefix+token, identity.ID, resetTokenTTL); err != nil {
		return err
	}

	name := s.displayName(ctx, identity.ID)
	return s.mailer.SendTemplate(ctx, identity.Email, name, "password_reset", "Reset your password", map[string]string{
		"Name":     name,
		"ResetURL": s.siteURL + "/reset-password?token=" + token,
	})
}

// ResetPassword consumes a reset token and sets the new password
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.consumeToken(ctx, resetKeyPrefix+token)
	if err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

// SwitchOrganization resolves the caller's profile in the target org and
// issues a fresh access token scoped to it. The whole switch completes in
// this call; the client only follows RedirectPath.
func (s *Service) SwitchOrganization(ctx context.Context, userID, targetOrgID uuid.UUID) (*SwitchOrganizationResponse, error) {
	p, err := s.repo.GetByUserAndOrg(ctx, userID, targetOrgID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrNoMembership
	}

	token, err := s.jwtService.GenerateAccessToken(p.UserID, p.ID, p.OrganizationID, p.Role)
	if err != nil {
		return nil, err
	}

	return &SwitchOrganizationResponse{
		AccessToken:  token,
		RedirectPath: redirectPathForRole(p.Role),
		Profile:      ResponseFromEntity(p),
	}, nil
}

// displayName picks a greeting name from the user's first profile.
// Best effort: email flows still work for a user whose profiles are gone.
func (s *Service) displayName(ctx context.Context, userID uuid.UUID) string {
	profiles, err := s.repo.ListByUser(ctx, userID)
	if err != nil || len(profiles) == 0 {
		return ""
	}
	return profiles[0].FullName
}

func redirectPathForRole(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleManager:
		return "/manage/checklists"
	default:
		return "/my/checklists"
	}
}

// Redis token helpers (handle nil redis gracefully)
func (s *Service) storeToken(ctx context.Context, key string, userID uuid.UUID, ttl time.Duration) error {
	if s.redis == nil {
		log.Warn().Msg("Redis not configured, one-time tokens disabled")
		return ErrInvalidToken
	}
	return s.redis.Set(ctx, key, userID.String(), ttl).Err()
}

// Refresh tokens are stored hashed, keyed to the owning user. Without
// Redis a login still works but its refresh token can never be redeemed.
func (s *Service) storeRefreshToken(ctx context.Context, token string, userID uuid.UUID) error {
	if s.redis == nil {
		log.Warn().Msg("Redis not configured, refresh tokens disabled")
		return nil
	}
	key := refreshKeyPrefix + jwt.HashRefreshToken(token)
	return s.redis.Set(ctx, key, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) consumeRefreshToken(ctx context.Context, token string, userID uuid.UUID) error {
	if s.redis == nil {
		return ErrInvalidToken
	}
	key := refreshKeyPrefix + jwt.HashRefreshToken(token)
	val, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrInvalidToken
		}
		return err
	}
	if val != userID.String() {
		return ErrInvalidToken
	}
	return nil
}

func (s *Service) consumeToken(ctx context.Context, key string) (uuid.UUID, error) {
	if s.redis == nil {
		return uuid.Nil, ErrInvalidToken
	}
	val, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
