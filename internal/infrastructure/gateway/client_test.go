package gateway_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, publishable string) *gateway.StripeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gateway.NewStripeClient(config.StripeConfig{
		SecretKey:      "sk_test_123",
		PublishableKey: publishable,
		Timeout:        2 * time.Second,
		APIBaseURL:     srv.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStripeClient_CreateIntent(t *testing.T) {
	var (
		gotKey  string
		gotForm url.Values
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","client_secret":"pi_123_secret_abc","status":"requires_payment_method","amount":1500,"currency":"usd"}`)
	}, "pk_test_123")

	resp, err := client.CreateIntent(context.Background(), application.CreateIntentRequest{
		IdempotencyKey: "tok-1",
		AmountCents:    1500,
		Currency:       "usd",
		Metadata:       map[string]string{"token": "tok-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", resp.IntentID)
	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)
	assert.Equal(t, "tok-1", gotKey)
	assert.Equal(t, "1500", gotForm.Get("amount"))
	assert.Equal(t, "usd", gotForm.Get("currency"))
	assert.Equal(t, "tok-1", gotForm.Get("metadata[token]"))
}

func TestStripeClient_GetIntentStatus(t *testing.T) {
	t.Run("maps status and last error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","status":"requires_payment_method","amount":1500,"last_payment_error":{"message":"Your card was declined.","code":"card_declined"}}`)
		}, "")

		resp, err := client.GetIntentStatus(context.Background(), "pi_123")

		require.NoError(t, err)
		assert.Equal(t, "requires_payment_method", resp.Status)
		assert.Equal(t, "Your card was declined.", resp.FailureReason)
		assert.Equal(t, int64(1500), resp.AmountCents)
	})

	t.Run("wraps api errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_x'"}}`)
		}, "")

		_, err := client.GetIntentStatus(context.Background(), "pi_x")

		gwErr, ok := application.IsGatewayError(err)
		require.True(t, ok)
		assert.Equal(t, "resource_missing", gwErr.Code)
		assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
		assert.False(t, gwErr.IsRetryable())
	})

	t.Run("server errors are retryable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":{"type":"api_error","message":"boom"}}`)
		}, "")

		_, err := client.GetIntentStatus(context.Background(), "pi_x")

		gwErr, ok := application.IsGatewayError(err)
		require.True(t, ok)
		assert.Equal(t, "api_error", gwErr.Code)
		assert.True(t, gwErr.IsRetryable())
	})
}

func TestStripeClient_GetPublicConfig(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}

	cfg, err := newTestClient(t, noop, "pk_test_123").GetPublicConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk_test_123", cfg.PublicKey)

	_, err = newTestClient(t, noop, "").GetPublicConfig(context.Background())
	assert.ErrorIs(t, err, domain.ErrGatewayNotConfigured)
}
