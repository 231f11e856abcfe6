package organization

import "errors"

var (
	ErrNotFound        = errors.New("organization not found")
	ErrAlreadyArchived = errors.New("organization is already archived")
)
