package gateway

import (
	"context"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
)

// RetryGatewayClient retries transient gateway failures. CreateIntent is safe to repeat
// because every request carries the transaction token as idempotency key.
type RetryGatewayClient struct {
	inner  application.GatewayClient
	policy retry.Policy
}

func NewRetryGatewayClient(inner application.GatewayClient, policy retry.Policy) *RetryGatewayClient {
	return &RetryGatewayClient{
		inner:  inner,
		policy: policy,
	}
}

func (r *RetryGatewayClient) CreateIntent(ctx context.Context, req application.CreateIntentRequest) (*application.IntentResponse, error) {
	return retry.Do(ctx, r.policy, isRetryable, func(ctx context.Context) (*application.IntentResponse, error) {
		return r.inner.CreateIntent(ctx, req)
	})
}

func (r *RetryGatewayClient) GetPublicConfig(ctx context.Context) (*application.PublicConfig, error) {
	return r.inner.GetPublicConfig(ctx)
}

func (r *RetryGatewayClient) GetIntentStatus(ctx context.Context, intentID string) (*application.IntentStatusResponse, error) {
	return retry.Do(ctx, r.policy, isRetryable, func(ctx context.Context) (*application.IntentStatusResponse, error) {
		return r.inner.GetIntentStatus(ctx, intentID)
	})
}

func isRetryable(err error) bool {
	if gwErr, ok := application.IsGatewayError(err); ok {
		return gwErr.IsRetryable()
	}
	return application.IsRetryable(err)
}
