package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mydaylogs/mydaylogs-api/internal/pkg/billing"
)

type fakeRepo struct {
	subs     map[uuid.UUID]*Subscription
	payments map[uuid.UUID]*Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		subs:     make(map[uuid.UUID]*Subscription),
		payments: make(map[uuid.UUID]*Payment),
	}
}

func (f *fakeRepo) GetByOrganization(ctx context.Context, orgID uuid.UUID) (*Subscription, error) {
	for _, s := range f.subs {
		if s.OrganizationID == orgID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	return f.subs[id], nil
}

func (f *fakeRepo) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	s := f.subs[id]
	s.Status = StatusCancelled
	s.CancelAtPeriodEnd = true
	return nil
}

func (f *fakeRepo) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return f.payments[id], nil
}

func (f *fakeRepo) ListPayments(ctx context.Context, orgID uuid.UUID) ([]*Payment, error) {
	var out []*Payment
	for _, p := range f.payments {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	f.payments[id].Status = PaymentRefunded
	return nil
}

type fakeBilling struct {
	refundErr     error
	cancelErr     error
	getErr        error
	remoteStatus  string
	refundCalls   int
	cancelCalls   int
	getCalls      int
	lastChargeID  string
	lastAmount    int64
	lastCancelled string
}

func (f *fakeBilling) CreateRefund(ctx context.Context, chargeID string, amount int64) (*billing.Refund, error) {
	f.refundCalls++
	f.lastChargeID = chargeID
	f.lastAmount = amount
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return &billing.Refund{ID: "re_1", ChargeID: chargeID, Amount: amount, Status: "succeeded"}, nil
}

func (f *fakeBilling) CancelSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	f.cancelCalls++
	f.lastCancelled = subscriptionID
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &billing.Subscription{ID: subscriptionID, Status: "canceled"}, nil
}

func (f *fakeBilling) GetSubscription(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	status := f.remoteStatus
	if status == "" {
		status = "active"
	}
	return &billing.Subscription{ID: subscriptionID, Status: status}, nil
}

func seedPayment(repo *fakeRepo, amount int64) *Payment {
	p := &Payment{
		ID:               uuid.New(),
		OrganizationID:   uuid.New(),
		SubscriptionID:   uuid.New(),
		ProviderChargeID: "ch_123",
		Amount:           amount,
		Currency:         "usd",
		Status:           PaymentPaid,
		PaidAt:           time.Now(),
	}
	repo.payments[p.ID] = p
	return p
}

func TestRefundFullAmountByDefault(t *testing.T) {
	repo := newFakeRepo()
	payment := seedPayment(repo, 4900)
	provider := &fakeBilling{}
	svc := NewService(repo, provider)

	got, err := svc.Refund(context.Background(), payment.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != PaymentRefunded {
		t.Fatalf("payment not marked refunded: %+v", got)
	}
	if provider.lastChargeID != "ch_123" || provider.lastAmount != 4900 {
		t.Fatalf("provider called with %s/%d", provider.lastChargeID, provider.lastAmount)
	}
}

func TestRefundPartialAmount(t *testing.T) {
	repo := newFakeRepo()
	payment := seedPayment(repo, 4900)
	provider := &fakeBilling{}
	svc := NewService(repo, provider)

	if _, err := svc.Refund(context.Background(), payment.ID, 1000); err != nil {
		t.Fatal(err)
	}
	if provider.lastAmount != 1000 {
		t.Fatalf("expected partial amount 1000, got %d", provider.lastAmount)
	}
}

func TestRefundTwiceIsRejectedBeforeProviderCall(t *testing.T) {
	repo := newFakeRepo()
	payment := seedPayment(repo, 4900)
	provider := &fakeBilling{}
	svc := NewService(repo, provider)

	if _, err := svc.Refund(context.Background(), payment.ID, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refund(context.Background(), payment.ID, 0); err != ErrAlreadyRefunded {
		t.Fatalf("expected ErrAlreadyRefunded, got %v", err)
	}
	if provider.refundCalls != 1 {
		t.Fatalf("provider must not be called twice, got %d calls", provider.refundCalls)
	}
}

func TestRefundProviderFailurePassesThrough(t *testing.T) {
	repo := newFakeRepo()
	payment := seedPayment(repo, 4900)
	apiErr := &billing.APIError{StatusCode: 503, Message: "charge ch_123: processor timeout at gateway hop 4"}
	provider := &fakeBilling{refundErr: apiErr}
	svc := NewService(repo, provider)

	_, err := svc.Refund(context.Background(), payment.ID, 0)
	if err != apiErr {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if repo.payments[payment.ID].Status != PaymentPaid {
		t.Fatal("payment must stay paid when the provider refund fails")
	}
}

func TestCancelSubscription(t *testing.T) {
	repo := newFakeRepo()
	sub := &Subscription{
		ID:                     uuid.New(),
		OrganizationID:         uuid.New(),
		ProviderSubscriptionID: "sub_42",
		Plan:                   "team",
		Status:                 StatusActive,
		CreatedAt:              time.Now(),
	}
	repo.subs[sub.ID] = sub
	provider := &fakeBilling{}
	svc := NewService(repo, provider)

	got, err := svc.Cancel(context.Background(), sub.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusCancelled || !got.CancelAtPeriodEnd {
		t.Fatalf("unexpected state after cancel: %+v", got)
	}
	if provider.lastCancelled != "sub_42" {
		t.Fatalf("provider called with %s", provider.lastCancelled)
	}

	if _, err := svc.Cancel(context.Background(), sub.ID); err != ErrAlreadyCancelled {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if provider.cancelCalls != 1 {
		t.Fatalf("provider must not be called again, got %d calls", provider.cancelCalls)
	}
}

func TestCancelReconcilesProviderState(t *testing.T) {
	repo := newFakeRepo()
	sub := &Subscription{
		ID:                     uuid.New(),
		OrganizationID:         uuid.New(),
		ProviderSubscriptionID: "sub_42",
		Plan:                   "team",
		Status:                 StatusActive,
		CreatedAt:              time.Now(),
	}
	repo.subs[sub.ID] = sub
	provider := &fakeBilling{remoteStatus: "canceled"}
	svc := NewService(repo, provider)

	// Already cancelled at the provider: mirror locally, skip the cancel call
	if _, err := svc.Cancel(context.Background(), sub.ID); err != ErrAlreadyCancelled {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if repo.subs[sub.ID].Status != StatusCancelled {
		t.Fatal("local mirror not updated from provider state")
	}
	if provider.cancelCalls != 0 {
		t.Fatalf("provider cancel must not be called, got %d calls", provider.cancelCalls)
	}
	if provider.getCalls != 1 {
		t.Fatalf("expected one provider lookup, got %d", provider.getCalls)
	}
}

func TestCancelUnknownSubscription(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeBilling{})
	if _, err := svc.Cancel(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
