package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeInvalidState           = "INVALID_STATE"
	ErrCodeConflict               = "CONFLICT"
	ErrCodeGatewayRejected        = "GATEWAY_REJECTED"
	ErrCodePendingAuthentication  = "PENDING_AUTHENTICATION"
	ErrCodeReconciliationRequired = "RECONCILIATION_REQUIRED"
	ErrCodeTransientFailure       = "TRANSIENT_FAILURE"
	ErrCodeInvalidInput           = "INVALID_INPUT"
	ErrCodeInternal               = "INTERNAL_ERROR"
)

func NewNotFoundError(what string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", what),
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewInvalidStateError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidState,
		Message:    "Transaction is already finalized",
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func NewConflictError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeConflict,
		Message:    "Payment intent does not belong to this transaction",
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

// NewGatewayRejectedError carries the gateway's reason in Message.
func NewGatewayRejectedError(reason string, err error) *ServiceError {
	if reason == "" {
		reason = "Payment was not completed"
	}
	return &ServiceError{
		Code:       ErrCodeGatewayRejected,
		Message:    reason,
		HTTPStatus: http.StatusPaymentRequired,
		Err:        err,
	}
}

func NewPendingAuthenticationError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodePendingAuthentication,
		Message:    "Additional authentication is required. Complete it and retry.",
		HTTPStatus: http.StatusPaymentRequired,
	}
}

// NewReconciliationRequiredError means funds were captured but local state was not written.
func NewReconciliationRequiredError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeReconciliationRequired,
		Message:    "Payment received. Access is being activated, please check back shortly.",
		HTTPStatus: http.StatusAccepted,
		Err:        err,
	}
}

func NewTransientError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTransientFailure,
		Message:    "Temporary failure, please retry",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	msg := "Invalid input"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// HasCode reports whether err is a ServiceError with the given code.
func HasCode(err error, code string) bool {
	svcErr, ok := IsServiceError(err)
	return ok && svcErr.Code == code
}
