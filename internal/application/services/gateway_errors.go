package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

// mapGatewayError turns a gateway failure into the service taxonomy.
func mapGatewayError(err error) error {
	if svcErr, ok := application.IsServiceError(err); ok {
		return svcErr
	}
	if errors.Is(err, domain.ErrGatewayNotConfigured) {
		return application.NewInvalidInputError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return application.NewTransientError(err)
	}

	gwErr, ok := application.IsGatewayError(err)
	if !ok {
		return application.NewTransientError(err)
	}
	if gwErr.IsRetryable() {
		return application.NewTransientError(err)
	}
	if gwErr.StatusCode == http.StatusNotFound || gwErr.Code == "resource_missing" {
		return application.NewNotFoundError("payment intent", err)
	}
	return application.NewGatewayRejectedError(gwErr.Message, err)
}
