package subscription

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionResponse represents a subscription in the API
type SubscriptionResponse struct {
	ID                uuid.UUID `json:"id"`
	OrganizationID    uuid.UUID `json:"organization_id"`
	Plan              string    `json:"plan"`
	Status            string    `json:"status"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
	CurrentPeriodEnd  *string   `json:"current_period_end,omitempty"`
	CreatedAt         string    `json:"created_at"`
}

// ResponseFromEntity converts entity to response
func ResponseFromEntity(s *Subscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:                s.ID,
		OrganizationID:    s.OrganizationID,
		Plan:              s.Plan,
		Status:            s.Status,
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
	}
	if s.CurrentPeriodEnd.Valid {
		v := s.CurrentPeriodEnd.Time.Format(time.RFC3339)
		resp.CurrentPeriodEnd = &v
	}
	return resp
}

// PaymentResponse represents a payment in the API
type PaymentResponse struct {
	ID         uuid.UUID `json:"id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	PaidAt     string    `json:"paid_at"`
	RefundedAt *string   `json:"refunded_at,omitempty"`
}

// PaymentResponseFromEntity converts entity to response
func PaymentResponseFromEntity(p *Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:       p.ID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Status:   p.Status,
		PaidAt:   p.PaidAt.Format(time.RFC3339),
	}
	if p.RefundedAt.Valid {
		v := p.RefundedAt.Time.Format(time.RFC3339)
		resp.RefundedAt = &v
	}
	return resp
}

// RefundRequest for POST /master/payments/{id}/refund.
// Amount is optional: zero means refund the full charge.
type RefundRequest struct {
	Amount int64 `json:"amount" validate:"omitempty,min=1"`
}
