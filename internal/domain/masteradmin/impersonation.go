package masteradmin

import (
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
)

// Impersonation transitions operate on the signed session payload only.
// The master email and role pass through both transitions unchanged, so the
// real identity is always recoverable from the cookie itself.

// StartImpersonation returns a payload impersonating targetUserID.
// If an impersonation is already active it is ended first; switching targets
// never stacks sessions and never loses the original identity.
func StartImpersonation(p *session.Payload, targetUserID string) (*session.Payload, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	if !p.IsMasterAdmin() {
		return nil, ErrCannotImpersonate
	}

	base := *p
	if base.IsImpersonating() {
		ended, err := EndImpersonation(&base)
		if err != nil {
			return nil, err
		}
		base = *ended
	}

	base.Impersonating = targetUserID
	return &base, nil
}

// EndImpersonation clears the impersonation target and restores the
// master identity. Ending from a normal session is an error.
func EndImpersonation(p *session.Payload) (*session.Payload, error) {
	if p == nil {
		return nil, ErrUnauthenticated
	}
	if !p.IsImpersonating() {
		return nil, ErrNotImpersonating
	}

	restored := *p
	restored.Impersonating = ""
	return &restored, nil
}
