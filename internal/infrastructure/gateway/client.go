// Package gateway adapts Stripe PaymentIntents to the application's GatewayClient port.
package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type StripeClient struct {
	api            *client.API
	publishableKey string
	logger         *slog.Logger
}

// NewStripeClient builds a client with SDK retries disabled; RetryGatewayClient owns retries.
func NewStripeClient(cfg config.StripeConfig, logger *slog.Logger) *StripeClient {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if cfg.APIBaseURL != "" {
		backendCfg.URL = stripe.String(cfg.APIBaseURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	return &StripeClient{
		api:            client.New(cfg.SecretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend}),
		publishableKey: cfg.PublishableKey,
		logger:         logger,
	}
}

func (c *StripeClient) CreateIntent(ctx context.Context, req application.CreateIntentRequest) (*application.IntentResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Params: stripe.Params{
			IdempotencyKey: stripe.String(req.IdempotencyKey),
			Context:        ctx,
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logError("CreateIntent", err)
		return nil, wrapError(err)
	}

	c.logger.Info("stripe payment intent created", "intent_id", pi.ID, "status", string(pi.Status))
	return &application.IntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// GetPublicConfig returns the configured publishable key.
func (c *StripeClient) GetPublicConfig(_ context.Context) (*application.PublicConfig, error) {
	if c.publishableKey == "" {
		return nil, domain.ErrGatewayNotConfigured
	}
	return &application.PublicConfig{PublicKey: c.publishableKey}, nil
}

func (c *StripeClient) GetIntentStatus(ctx context.Context, intentID string) (*application.IntentStatusResponse, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}

	pi, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		c.logError("GetIntentStatus", err)
		return nil, wrapError(err)
	}

	resp := &application.IntentStatusResponse{
		IntentID:    pi.ID,
		Status:      string(pi.Status),
		AmountCents: pi.Amount,
	}
	if pi.LastPaymentError != nil {
		resp.FailureReason = pi.LastPaymentError.Msg
	}
	return resp, nil
}

func (c *StripeClient) logError(operation string, err error) {
	if stripeErr, ok := asStripeError(err); ok {
		c.logger.Warn("stripe API error",
			"operation", operation,
			"type", string(stripeErr.Type),
			"code", string(stripeErr.Code),
			"message", stripeErr.Msg,
			"request_id", stripeErr.RequestID,
			"status_code", stripeErr.HTTPStatusCode,
		)
		return
	}
	c.logger.Warn("stripe transport error", "operation", operation, "error", err)
}
