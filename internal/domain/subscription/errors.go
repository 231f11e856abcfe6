package subscription

import "errors"

var (
	ErrNotFound         = errors.New("subscription not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyRefunded  = errors.New("payment already refunded")
	ErrAlreadyCancelled = errors.New("subscription already cancelled")
)
