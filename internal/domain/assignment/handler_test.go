package assignment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
)

// authAs injects an authenticated org-admin context the way the JWT
// middleware would.
func authAs(orgID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, uuid.New())
			ctx = context.WithValue(ctx, middleware.ProfileIDKey, uuid.New())
			ctx = context.WithValue(ctx, middleware.OrganizationIDKey, orgID)
			ctx = context.WithValue(ctx, middleware.RoleKey, "admin")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(repo *fakeRepo, orgID uuid.UUID) chi.Router {
	handler := NewHandler(NewService(repo))
	r := chi.NewRouter()
	r.Mount("/assignments", handler.Routes(authAs(orgID)))
	r.Mount("/reports", handler.ReportRoutes(authAs(orgID)))
	return r
}

func TestCancelEndpoint(t *testing.T) {
	repo := newFakeRepo()
	org1, org2 := uuid.New(), uuid.New()
	a := seedAssignment(repo, org1, StatusActive)

	// Admin of the owning org cancels
	router := newTestRouter(repo, org1)
	req := httptest.NewRequest(http.MethodPost, "/assignments/"+a.ID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if a.Status != StatusCancelled || a.IsActive {
		t.Fatalf("assignment not cancelled: %+v", a)
	}

	// Repeat cancel is a no-op success
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments/"+a.ID.String()+"/cancel", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat cancel should return 200, got %d", rec.Code)
	}

	// Admin of another org sees not found, not forbidden
	b := seedAssignment(repo, org1, StatusActive)
	otherRouter := newTestRouter(repo, org2)
	rec = httptest.NewRecorder()
	otherRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments/"+b.ID.String()+"/cancel", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant cancel should return 404, got %d", rec.Code)
	}
	if b.Status != StatusActive {
		t.Fatal("cross-tenant cancel must not change state")
	}
}

func TestCancelEndpointRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	org := uuid.New()
	a := seedAssignment(repo, org, StatusActive)

	staffAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.OrganizationIDKey, org)
			ctx = context.WithValue(ctx, middleware.RoleKey, "staff")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	handler := NewHandler(NewService(repo))
	router := chi.NewRouter()
	router.Mount("/assignments", handler.Routes(staffAuth))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments/"+a.ID.String()+"/cancel", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff cancel should return 403, got %d", rec.Code)
	}
	if a.Status != StatusActive {
		t.Fatal("assignment must be untouched")
	}
}
