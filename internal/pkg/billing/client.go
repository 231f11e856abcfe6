package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config holds billing provider API configuration
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to the billing provider (Stripe-compatible API)
type Client struct {
	httpClient *http.Client
	config     Config
}

// Refund represents a refund object returned by the provider
type Refund struct {
	ID       string `json:"id"`
	ChargeID string `json:"charge"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Subscription represents a provider-side subscription
type Subscription struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// APIError is a non-2xx response from the provider
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("billing api returned status %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a billing provider client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// CreateRefund refunds a charge, fully when amount is zero or partially
// for a positive amount in the smallest currency unit.
func (c *Client) CreateRefund(ctx context.Context, chargeID string, amount int64) (*Refund, error) {
	if strings.TrimSpace(chargeID) == "" {
		return nil, fmt.Errorf("validation error: charge id must be non-empty")
	}
	if amount < 0 {
		return nil, fmt.Errorf("validation error: amount must be >= 0")
	}

	form := url.Values{}
	form.Set("charge", chargeID)
	if amount > 0 {
		form.Set("amount", strconv.FormatInt(amount, 10))
	}

	var out Refund
	if err := c.post(ctx, "/v1/refunds", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription cancels a provider subscription at period end
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, fmt.Errorf("validation error: subscription id must be non-empty")
	}

	form := url.Values{}
	form.Set("cancel_at_period_end", "true")

	var out Subscription
	if err := c.post(ctx, "/v1/subscriptions/"+subscriptionID, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSubscription fetches the provider-side subscription state
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, fmt.Errorf("validation error: subscription id must be non-empty")
	}

	var out Subscription
	if err := c.do(ctx, http.MethodGet, "/v1/subscriptions/"+subscriptionID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	if c == nil || c.httpClient == nil {
		return fmt.Errorf("billing client is not initialized")
	}
	if strings.TrimSpace(c.config.BaseURL) == "" {
		return fmt.Errorf("billing config error: base_url is empty")
	}
	if strings.TrimSpace(c.config.SecretKey) == "" {
		return fmt.Errorf("billing config error: secret_key is empty")
	}

	base := strings.TrimRight(c.config.BaseURL, "/")
	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return fmt.Errorf("billing api call failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("billing api call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("billing api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: providerErrorMessage(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse billing response: %w", err)
	}
	return nil
}

func providerErrorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return "unexpected provider response"
}
