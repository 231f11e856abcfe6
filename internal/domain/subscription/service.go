package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/billing"
)

// BillingClient is the slice of the provider client this domain uses
type BillingClient interface {
	CreateRefund(ctx context.Context, chargeID string, amount int64) (*billing.Refund, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error)
}

// Service handles subscription business logic
type Service struct {
	repo    Repository
	billing BillingClient
}

// NewService creates subscription service
func NewService(repo Repository, billingClient BillingClient) *Service {
	return &Service{repo: repo, billing: billingClient}
}

// GetForOrganization returns the organization's current subscription
func (s *Service) GetForOrganization(ctx context.Context, orgID uuid.UUID) (*Subscription, error) {
	sub, err := s.repo.GetByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// ListPayments returns the organization's payments, newest first
func (s *Service) ListPayments(ctx context.Context, orgID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, orgID)
}

// Cancel cancels the subscription at the provider, then mirrors the
// status locally. Provider errors pass through untouched so the handler
// can map them to the upstream error family.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	if sub.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	// Reconcile with the provider first: a cancellation done on the
	// provider's dashboard may not have reached the local mirror yet
	remote, err := s.billing.GetSubscription(ctx, sub.ProviderSubscriptionID)
	if err != nil {
		log.Error().Err(err).
			Str("subscription_id", id.String()).
			Msg("Provider subscription lookup failed")
		return nil, err
	}
	if remote.Status == "canceled" || remote.CancelAtPeriodEnd {
		if err := s.repo.MarkCancelled(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyCancelled
	}

	if _, err := s.billing.CancelSubscription(ctx, sub.ProviderSubscriptionID); err != nil {
		log.Error().Err(err).
			Str("subscription_id", id.String()).
			Msg("Provider subscription cancel failed")
		return nil, err
	}

	if err := s.repo.MarkCancelled(ctx, id); err != nil {
		return nil, err
	}
	sub.Status = StatusCancelled
	sub.CancelAtPeriodEnd = true
	return sub, nil
}

// Refund refunds a payment at the provider and marks the local row.
// A zero amount refunds the full charge. Refunding twice is rejected
// before any provider call is made.
func (s *Service) Refund(ctx context.Context, paymentID uuid.UUID, amount int64) (*Payment, error) {
	payment, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == PaymentRefunded {
		return nil, ErrAlreadyRefunded
	}

	if amount <= 0 || amount > payment.Amount {
		amount = payment.Amount
	}

	if _, err := s.billing.CreateRefund(ctx, payment.ProviderChargeID, amount); err != nil {
		log.Error().Err(err).
			Str("payment_id", paymentID.String()).
			Msg("Provider refund failed")
		return nil, err
	}

	if err := s.repo.MarkRefunded(ctx, paymentID); err != nil {
		return nil, err
	}
	payment.Status = PaymentRefunded
	return payment, nil
}
