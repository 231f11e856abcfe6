package masteradmin

import "errors"

var (
	ErrUnauthenticated    = errors.New("missing or invalid master session")
	ErrForbidden          = errors.New("insufficient master privileges")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSuperuserNotFound  = errors.New("superuser not found")
	ErrSuperuserInactive  = errors.New("superuser account is inactive")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotImpersonating   = errors.New("no impersonation session is active")
	ErrCannotImpersonate  = errors.New("caller may not impersonate users")
)
