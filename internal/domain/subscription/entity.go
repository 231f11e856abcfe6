package subscription

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Subscription statuses mirror the billing provider
const (
	StatusActive    = "active"
	StatusPastDue   = "past_due"
	StatusCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Subscription is the local mirror of a provider subscription. The
// provider remains the source of truth; rows here are updated after each
// provider call or webhook.
type Subscription struct {
	ID                     uuid.UUID    `db:"id"`
	OrganizationID         uuid.UUID    `db:"organization_id"`
	ProviderSubscriptionID string       `db:"provider_subscription_id"`
	Plan                   string       `db:"plan"`
	Status                 string       `db:"status"`
	CancelAtPeriodEnd      bool         `db:"cancel_at_period_end"`
	CurrentPeriodEnd       sql.NullTime `db:"current_period_end"`
	CreatedAt              time.Time    `db:"created_at"`
	UpdatedAt              time.Time    `db:"updated_at"`
}

// Payment is one settled charge
type Payment struct {
	ID               uuid.UUID    `db:"id"`
	OrganizationID   uuid.UUID    `db:"organization_id"`
	SubscriptionID   uuid.UUID    `db:"subscription_id"`
	ProviderChargeID string       `db:"provider_charge_id"`
	Amount           int64        `db:"amount"`
	Currency         string       `db:"currency"`
	Status           string       `db:"status"`
	PaidAt           time.Time    `db:"paid_at"`
	RefundedAt       sql.NullTime `db:"refunded_at"`
	CreatedAt        time.Time    `db:"created_at"`
}
