package assignment

import "errors"

var (
	ErrNotFound       = errors.New("assignment not found")
	ErrReportNotFound = errors.New("report not found")
	ErrNotCancellable = errors.New("assignment cannot be cancelled")
	ErrNotDeleted     = errors.New("report is not deleted")
)
