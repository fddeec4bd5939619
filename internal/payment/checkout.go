// Package payment integrates the external checkout provider. The provider
// hosts the actual payment page; this service only creates checkout sessions
// and hands the session URL back to the client.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fanclubhq/fanclub/pkg/errors"
	"github.com/fanclubhq/fanclub/pkg/httpclient"
)

// Config holds checkout provider settings.
type Config struct {
	BaseURL string
	APIKey  string
}

// CheckoutRequest describes the session to create.
type CheckoutRequest struct {
	MembershipID  string `json:"membership_id"`
	Plan          string `json:"plan"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
}

// CheckoutSession is the provider's created session.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates checkout sessions with the external payment provider.
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// HTTPProvider talks to the provider's REST API behind a circuit breaker.
type HTTPProvider struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewHTTPProvider creates a provider client.
func NewHTTPProvider(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		client:  client,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// CreateCheckout creates a checkout session. Any provider-side failure maps
// to a checkout-failed error so callers can mark the membership accordingly.
func (p *HTTPProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(ctx, httpReq)
	if err != nil {
		p.logger.ErrorContext(ctx, "checkout session creation failed",
			slog.String("membership_id", req.MembershipID),
			slog.String("error", err.Error()),
		)
		return nil, errors.CheckoutFailed("payment provider unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "checkout provider")
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.CheckoutFailed("malformed provider response")
	}
	if session.URL == "" {
		return nil, errors.CheckoutFailed("provider response missing checkout url")
	}

	return &session, nil
}
