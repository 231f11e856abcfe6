package masteradmin

import (
	"context"
	"net/http"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
)

// Gate decides whether a request may perform master-admin actions.
// The signed session cookie is the only credential it trusts; anything
// missing or malformed is treated as unauthenticated, never as forbidden.
type Gate struct {
	codec *session.Codec
	repo  Repository
}

// NewGate creates the authorization gate
func NewGate(codec *session.Codec, repo Repository) *Gate {
	return &Gate{codec: codec, repo: repo}
}

// Authorize resolves the master session of a request.
// Returns ErrUnauthenticated when no valid session is present and
// ErrForbidden when the session role carries no master capability.
func (g *Gate) Authorize(r *http.Request) (*session.Payload, error) {
	payload := g.codec.FromRequest(r)
	if payload == nil {
		return nil, ErrUnauthenticated
	}
	if !payload.IsMasterAdmin() {
		return nil, ErrForbidden
	}
	return payload, nil
}

// CanRefund decides refund capability from the superuser table. The master
// admin account always may; superusers need an active row with a billing
// or operations role tag.
func (g *Gate) CanRefund(ctx context.Context, p *session.Payload) (bool, error) {
	if p == nil {
		return false, ErrUnauthenticated
	}
	if p.Role == session.RoleMasterAdmin {
		return true, nil
	}
	if p.Role != session.RoleSuperuser {
		return false, nil
	}

	su, err := g.repo.GetSuperuserByEmail(ctx, p.Email)
	if err != nil {
		return false, err
	}
	if su == nil {
		return false, nil
	}
	return su.CanRefund(), nil
}

type payloadKey struct{}

// RequireMaster is middleware enforcing master-admin capability.
// The verified payload lands on the request context for handlers.
func (g *Gate) RequireMaster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := g.Authorize(r)
		if err != nil {
			if err == ErrForbidden {
				response.Forbidden(w, "Master admin access required")
			} else {
				response.Unauthorized(w, "Not authenticated")
			}
			return
		}

		ctx := context.WithValue(r.Context(), payloadKey{}, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the verified payload placed by RequireMaster
func SessionFromContext(ctx context.Context) *session.Payload {
	if p, ok := ctx.Value(payloadKey{}).(*session.Payload); ok {
		return p
	}
	return nil
}
