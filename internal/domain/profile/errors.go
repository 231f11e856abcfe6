package profile

import "errors"

var (
	ErrNotFound           = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrNoMembership       = errors.New("no membership in organization")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
