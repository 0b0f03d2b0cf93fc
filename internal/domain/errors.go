package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Sentinel errors. Constructors below wrap them so callers can match with errors.Is.
var (
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrIntentMismatch        = errors.New("gateway intent mismatch")
	ErrUnknownGatewayStatus  = errors.New("unknown gateway status")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrGatewayNotConfigured  = errors.New("payment gateway is not configured")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrPlanNotFound          = errors.New("payment plan not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrBotNotFound           = errors.New("bot not found")
	ErrAccessWindowNotFound  = errors.New("access window not found")
	ErrIntentAlreadyAttached = errors.New("gateway intent already attached to another transaction")
	ErrPaymentDeclined       = errors.New("payment method declined")
)

const (
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeIntentMismatch       = "INTENT_MISMATCH"
	ErrCodeUnknownGatewayStatus = "UNKNOWN_GATEWAY_STATUS"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrMissingRequiredField,
	}
}

func NewInvalidTransitionError(from, to TransactionStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewIntentMismatchError(stored, supplied string) *DomainError {
	return &DomainError{
		Code:    ErrCodeIntentMismatch,
		Message: fmt.Sprintf("transaction is bound to intent %s, got %s", stored, supplied),
		Err:     ErrIntentMismatch,
	}
}

func NewUnknownGatewayStatusError(status string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownGatewayStatus,
		Message: fmt.Sprintf("gateway reported unrecognized status %q", status),
		Err:     ErrUnknownGatewayStatus,
	}
}

func NewInvalidAmountError(amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %d", amount),
		Err:     ErrInvalidAmount,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
