package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/jwt"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/password"
)

type fakeRepo struct {
	profiles   map[uuid.UUID]*Profile
	identities map[uuid.UUID]*Identity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		profiles:   make(map[uuid.UUID]*Profile),
		identities: make(map[uuid.UUID]*Identity),
	}
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeRepo) GetByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID && p.OrganizationID == orgID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*Profile, error) {
	var out []*Profile
	for _, p := range f.profiles {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Profile, error) {
	var out []*Profile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	for _, p := range f.profiles {
		if p.UserID == userID {
			p.EmailVerified = true
		}
	}
	return nil
}

func (f *fakeRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	for id, p := range f.profiles {
		if p.UserID == userID {
			delete(f.profiles, id)
		}
	}
	return nil
}

func (f *fakeRepo) GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	return f.identities[id], nil
}

func (f *fakeRepo) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	for _, identity := range f.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	if identity, ok := f.identities[userID]; ok {
		identity.PasswordHash = hash
	}
	return nil
}

func (f *fakeRepo) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	delete(f.identities, userID)
	return nil
}

type fakeMailer struct {
	sent []string
	data []map[string]string
}

func (f *fakeMailer) SendTemplate(ctx context.Context, to, toName, templateName, subject string, data interface{}) error {
	f.sent = append(f.sent, templateName+":"+to)
	if m, ok := data.(map[string]string); ok {
		f.data = append(f.data, m)
	}
	return nil
}

// lastToken pulls the token out of the most recently mailed link
func (f *fakeMailer) lastToken(t *testing.T, urlKey string) string {
	t.Helper()
	if len(f.data) == 0 {
		t.Fatal("no email was sent")
	}
	link := f.data[len(f.data)-1][urlKey]
	i := strings.Index(link, "token=")
	if i < 0 {
		t.Fatalf("no token in link %q", link)
	}
	return link[i+len("token="):]
}

func newTestService(repo *fakeRepo, mailer *fakeMailer) *Service {
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, nil, jwtSvc, mailer, "https://app.example.com")
}

// newRedisService backs the service with an in-process Redis so one-time
// and refresh tokens work end to end
func newRedisService(t *testing.T, repo *fakeRepo, mailer *fakeMailer) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, client, jwtSvc, mailer, "https://app.example.com")
}

func seedMembership(repo *fakeRepo, userID, orgID uuid.UUID, role string) *Profile {
	p := &Profile{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		Email:          "user@example.com",
		FullName:       "Test User",
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	repo.profiles[p.ID] = p
	return p
}

func TestGetCrossTenantReadsAsNotFound(t *testing.T) {
	repo := newFakeRepo()
	org1, org2 := uuid.New(), uuid.New()
	p := seedMembership(repo, uuid.New(), org1, RoleStaff)
	svc := newTestService(repo, &fakeMailer{})

	if _, err := svc.Get(context.Background(), org1, p.ID); err != nil {
		t.Fatalf("same-org lookup failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), org2, p.ID); err != ErrNotFound {
		t.Fatalf("cross-tenant lookup must read as not found, got %v", err)
	}
}

func TestSwitchOrganization(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	org1, org2, org3 := uuid.New(), uuid.New(), uuid.New()
	seedMembership(repo, userID, org1, RoleStaff)
	admin := seedMembership(repo, userID, org2, RoleAdmin)
	svc := newTestService(repo, &fakeMailer{})

	result, err := svc.SwitchOrganization(context.Background(), userID, org2)
	if err != nil {
		t.Fatal(err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected a fresh access token")
	}
	if result.RedirectPath != "/admin/dashboard" {
		t.Fatalf("unexpected redirect for admin: %s", result.RedirectPath)
	}
	if result.Profile.ID != admin.ID {
		t.Fatalf("token issued for wrong profile: %+v", result.Profile)
	}

	// The fresh token is scoped to the target membership
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	claims, err := jwtSvc.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.OrganizationID != org2 || claims.ProfileID != admin.ID || claims.Role != RoleAdmin {
		t.Fatalf("token scoped wrong: %+v", claims)
	}

	// No membership in the target org
	if _, err := svc.SwitchOrganization(context.Background(), userID, org3); err != ErrNoMembership {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
}

func TestSwitchOrganizationInactiveMembership(t *testing.T) {
	repo := newFakeRepo()
	userID, orgID := uuid.New(), uuid.New()
	p := seedMembership(repo, userID, orgID, RoleStaff)
	p.IsActive = false
	svc := newTestService(repo, &fakeMailer{})

	if _, err := svc.SwitchOrganization(context.Background(), userID, orgID); err != ErrNoMembership {
		t.Fatalf("inactive membership must not be switchable, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("old-password")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	svc := newTestService(repo, &fakeMailer{})

	if err := svc.ChangePassword(context.Background(), userID, "wrong", "new-password"); err != ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), userID, "old-password", "new-password"); err != nil {
		t.Fatal(err)
	}
	if !password.Verify("new-password", repo.identities[userID].PasswordHash) {
		t.Fatal("new password not stored")
	}
}

func TestDeleteUserRemovesAllProfilesAndIdentity(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	seedMembership(repo, userID, uuid.New(), RoleStaff)
	seedMembership(repo, userID, uuid.New(), RoleAdmin)
	other := seedMembership(repo, uuid.New(), uuid.New(), RoleStaff)
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com"}
	svc := newTestService(repo, &fakeMailer{})

	if err := svc.DeleteUser(context.Background(), userID); err != nil {
		t.Fatal(err)
	}
	if len(repo.profiles) != 1 || repo.profiles[other.ID] == nil {
		t.Fatalf("expected only unrelated profile to remain, have %d", len(repo.profiles))
	}
	if repo.identities[userID] != nil {
		t.Fatal("identity should be gone")
	}

	// Second delete is a no-op, not an error
	if err := svc.DeleteUser(context.Background(), userID); err != nil {
		t.Fatalf("repeat delete must succeed: %v", err)
	}
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("no email should be sent for an unknown account")
	}
}

func TestEmailVerificationRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com"}
	p := seedMembership(repo, userID, uuid.New(), RoleStaff)
	mailer := &fakeMailer{}
	svc := newRedisService(t, repo, mailer)

	if err := svc.RequestEmailVerification(context.Background(), userID); err != nil {
		t.Fatal(err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "verify_email:user@example.com" {
		t.Fatalf("unexpected mailer calls: %v", mailer.sent)
	}

	token := mailer.lastToken(t, "VerifyURL")
	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	if !repo.profiles[p.ID].EmailVerified {
		t.Fatal("profile not marked verified")
	}

	// The token is one-time
	if err := svc.VerifyEmail(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("replayed token must fail, got %v", err)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("old-password")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	mailer := &fakeMailer{}
	svc := newRedisService(t, repo, mailer)

	if err := svc.RequestPasswordReset(context.Background(), "user@example.com"); err != nil {
		t.Fatal(err)
	}

	token := mailer.lastToken(t, "ResetURL")
	if err := svc.ResetPassword(context.Background(), token, "fresh-password"); err != nil {
		t.Fatal(err)
	}
	if !password.Verify("fresh-password", repo.identities[userID].PasswordHash) {
		t.Fatal("new password not stored")
	}
}

func TestLoginIssuesScopedTokenPair(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("user-password-1")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	orgID := uuid.New()
	p := seedMembership(repo, userID, orgID, RoleAdmin)
	svc := newRedisService(t, repo, &fakeMailer{})

	result, err := svc.Login(context.Background(), "user@example.com", "user-password-1", &orgID)
	if err != nil {
		t.Fatal(err)
	}
	if result.RefreshToken == "" {
		t.Fatal("expected a refresh token")
	}
	if result.RedirectPath != "/admin/dashboard" {
		t.Fatalf("unexpected redirect for admin: %s", result.RedirectPath)
	}

	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	claims, err := jwtSvc.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if claims.OrganizationID != orgID || claims.ProfileID != p.ID || claims.Role != RoleAdmin {
		t.Fatalf("token scoped wrong: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("user-password-1")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	seedMembership(repo, userID, uuid.New(), RoleStaff)
	svc := newRedisService(t, repo, &fakeMailer{})

	if _, err := svc.Login(context.Background(), "user@example.com", "wrong", nil); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever", nil); err != ErrInvalidCredentials {
		t.Fatalf("unknown email must read the same as a bad password, got %v", err)
	}
}

func TestLoginWithoutActiveMembership(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("user-password-1")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	p := seedMembership(repo, userID, uuid.New(), RoleStaff)
	p.IsActive = false
	svc := newRedisService(t, repo, &fakeMailer{})

	if _, err := svc.Login(context.Background(), "user@example.com", "user-password-1", nil); err != ErrNoMembership {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeRepo()
	userID := uuid.New()
	hash, err := password.Hash("user-password-1")
	if err != nil {
		t.Fatal(err)
	}
	repo.identities[userID] = &Identity{ID: userID, Email: "user@example.com", PasswordHash: hash}
	seedMembership(repo, userID, uuid.New(), RoleStaff)
	svc := newRedisService(t, repo, &fakeMailer{})

	login, err := svc.Login(context.Background(), "user@example.com", "user-password-1", nil)
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected a fresh token pair")
	}

	// The consumed token is revoked
	if _, err := svc.Refresh(context.Background(), login.RefreshToken); err != ErrInvalidToken {
		t.Fatalf("replayed refresh token must fail, got %v", err)
	}

	// A token that never went through login is rejected too
	if _, err := svc.Refresh(context.Background(), "not-a-token"); err != ErrInvalidToken {
		t.Fatalf("garbage refresh token must fail, got %v", err)
	}
}

func TestTokenFlowsRequireRedis(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	if err := svc.VerifyEmail(context.Background(), "some-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken without a token store, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "some-token", "new-password"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken without a token store, got %v", err)
	}
}
