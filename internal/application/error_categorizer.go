package application

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/DanielPopoola/groupgate/internal/domain"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrIntentMismatch) ||
		errors.Is(err, domain.ErrIntentAlreadyAttached) ||
		errors.Is(err, domain.ErrInvalidAmount) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrTransactionNotFound) ||
		errors.Is(err, domain.ErrContactNotFound) ||
		errors.Is(err, domain.ErrBotNotFound) ||
		errors.Is(err, domain.ErrPlanNotFound) ||
		errors.Is(err, domain.ErrMissingRequiredField) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeNotFound:
			return CategoryClientError
		case ErrCodeInvalidState, ErrCodeConflict:
			return CategoryBusinessRule
		case ErrCodeGatewayRejected, ErrCodePendingAuthentication:
			return CategoryPermanent
		case ErrCodeInternal, ErrCodeReconciliationRequired:
			return CategoryInfrastructure
		case ErrCodeTransientFailure:
			return CategoryTransient
		}
	}

	if gwErr, ok := IsGatewayError(err); ok {
		if gwErr.IsRetryable() {
			return CategoryTransient
		}
		if gwErr.Code == "resource_missing" {
			return CategoryClientError
		}
		return CategoryPermanent
	}

	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrIntentMismatch),
		errors.Is(err, domain.ErrIntentAlreadyAttached):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrBotNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}

	if _, ok := IsGatewayError(err); ok {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrBotNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrPlanNotFound):
		return ErrCodeNotFound
	case errors.Is(err, domain.ErrIntentAlreadyAttached):
		return ErrCodeConflict
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTransientFailure
	}

	if gwErr, ok := IsGatewayError(err); ok {
		return "GATEWAY_" + strings.ToUpper(gwErr.Code)
	}

	return ErrCodeInternal
}
