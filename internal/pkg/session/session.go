package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the single signed master-admin session cookie. There is no
// parallel plain-flag cookie; the signed payload is the only source of truth.
const CookieName = "mdl_master_session"

// Role of a master session holder
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleMasterAdmin Role = "masteradmin"
	RoleSuperuser   Role = "superuser"
	RoleUser        Role = "user"
)

// Payload is the master-admin session state carried in the cookie.
// Email and Role identify the real operator and survive impersonation
// unchanged; Impersonating holds the target tenant user ID while an
// impersonation session is active.
type Payload struct {
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	SuperuserRole string `json:"superuser_role,omitempty"`
	Impersonating string `json:"impersonating,omitempty"`
}

// IsMasterAdmin reports whether the payload grants master-admin capability
func (p *Payload) IsMasterAdmin() bool {
	return p.Role == RoleMasterAdmin || p.Role == RoleSuperuser
}

// IsImpersonating reports whether an impersonation session is active
func (p *Payload) IsImpersonating() bool {
	return p.Impersonating != ""
}

type sessionClaims struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	SuperuserRole string `json:"superuser_role,omitempty"`
	Impersonating string `json:"impersonating,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies master session payloads
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a session codec
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode signs the payload into a cookie value
func (c *Codec) Encode(p Payload) (string, error) {
	if p.Email == "" || p.Role == "" {
		return "", errors.New("session payload requires email and role")
	}
	now := time.Now()
	claims := sessionClaims{
		Email:         p.Email,
		Role:          string(p.Role),
		SuperuserRole: p.SuperuserRole,
		Impersonating: p.Impersonating,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "mydaylogs-master",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a cookie value and returns the payload.
// Any missing, malformed, tampered or expired value yields nil. The caller
// must treat that as an unauthenticated request, never as a parsed-but-
// untrusted payload.
func (c *Codec) Decode(value string) *Payload {
	if value == "" {
		return nil
	}
	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Email == "" || claims.Role == "" {
		return nil
	}
	return &Payload{
		Email:         claims.Email,
		Role:          Role(claims.Role),
		SuperuserRole: claims.SuperuserRole,
		Impersonating: claims.Impersonating,
	}
}

// FromRequest decodes the session cookie of an incoming request.
// Returns nil when the cookie is missing or does not verify.
func (c *Codec) FromRequest(r *http.Request) *Payload {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	return c.Decode(cookie.Value)
}

// SetCookie writes the session cookie with the required security attributes
func (c *Codec) SetCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie
func (c *Codec) ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
