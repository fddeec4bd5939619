package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
	"github.com/fanclubhq/fanclub/pkg/httpclient"
)

func newTestProvider(t *testing.T, baseURL string) *HTTPProvider {
	t.Helper()
	client := httpclient.New(httpclient.Config{
		Timeout:         2 * time.Second,
		MaxRetries:      0,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    time.Millisecond,
		MaxConnsPerHost: 10,
	})
	cb := httpclient.NewCircuitBreakerClient(client,
		httpclient.DefaultCircuitBreakerConfig("checkout-test-"+t.Name()),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewHTTPProvider(Config{BaseURL: baseURL, APIKey: "sk-test"}, cb,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleRequest() CheckoutRequest {
	return CheckoutRequest{
		MembershipID:  "m-1",
		Plan:          "student",
		AmountCents:   2500,
		Currency:      "EUR",
		CustomerEmail: "ada@example.com",
	}
}

func TestHTTPProvider_CreateCheckout_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m-1", req.MembershipID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CheckoutSession{ID: "cs-1", URL: "https://pay.example.com/cs-1"})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	session, err := p.CreateCheckout(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "cs-1", session.ID)
	assert.Equal(t, "https://pay.example.com/cs-1", session.URL)
}

func TestHTTPProvider_CreateCheckout_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CheckoutSession{ID: "cs-1"})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.CreateCheckout(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCheckoutFailed))
	assert.Contains(t, err.Error(), "missing checkout url")
}

func TestHTTPProvider_CreateCheckout_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.CreateCheckout(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCheckoutFailed))
}

func TestHTTPProvider_CreateCheckout_Unreachable(t *testing.T) {
	p := newTestProvider(t, "http://127.0.0.1:1")
	_, err := p.CreateCheckout(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCheckoutFailed))
}
