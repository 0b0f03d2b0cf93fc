// Package domain encodes payment transactions, access windows and the rules that move them.
package domain

import (
	"errors"
	"slices"
	"time"
)

// TransactionStatus represents the current state of a transaction in its lifecycle
type TransactionStatus string

const (
	StatusPending              TransactionStatus = "pending"
	StatusRequiresConfirmation TransactionStatus = "requires_confirmation"
	StatusSucceeded            TransactionStatus = "succeeded"
	StatusFailed               TransactionStatus = "failed"
	StatusCanceled             TransactionStatus = "canceled"
)

// Transaction is a single purchase attempt of a payment plan, addressed by an opaque token.
type Transaction struct {
	ID            string
	Token         string
	PaymentPlanID int64
	ContactID     int64
	BotID         int64
	AmountCents   int64
	Currency      string
	Status        TransactionStatus

	GatewayIntentID *string
	FailureReason   *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time

	// Reconciliation schedule. Any status change resets it.
	ReconcileAttempts  int
	NextReconcileAt    *time.Time
	ReconcileAbandoned bool
}

func NewTransaction(
	id string,
	token string,
	planID int64,
	contactID int64,
	botID int64,
	amount Money,
) (*Transaction, error) {
	if id == "" {
		return nil, errors.New("transaction ID is required")
	}
	if token == "" {
		return nil, errors.New("token is required")
	}
	if planID <= 0 {
		return nil, errors.New("payment plan ID is required")
	}
	if contactID <= 0 || botID <= 0 {
		return nil, errors.New("contact and bot are required")
	}

	now := time.Now()
	return &Transaction{
		ID:            id,
		Token:         token,
		PaymentPlanID: planID,
		ContactID:     contactID,
		BotID:         botID,
		AmountCents:   amount.Amount,
		Currency:      amount.Currency,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AttachIntent records the gateway intent that will settle this transaction.
// Attaching the same intent twice is a no-op; a different intent is rejected.
func (t *Transaction) AttachIntent(intentID string) error {
	if intentID == "" {
		return NewMissingRequiredFieldError("gateway intent ID")
	}
	if t.GatewayIntentID != nil {
		if *t.GatewayIntentID != intentID {
			return NewIntentMismatchError(*t.GatewayIntentID, intentID)
		}
		if t.Status == StatusRequiresConfirmation {
			return nil
		}
	}
	if err := t.transition(StatusRequiresConfirmation); err != nil {
		return err
	}
	t.GatewayIntentID = &intentID
	t.FailureReason = nil
	return nil
}

// Succeed marks the transaction as paid.
func (t *Transaction) Succeed(confirmedAt time.Time) error {
	if err := t.transition(StatusSucceeded); err != nil {
		return err
	}
	t.ConfirmedAt = &confirmedAt
	t.FailureReason = nil
	return nil
}

// Fail records a gateway-side failure. The transaction may still be retried.
func (t *Transaction) Fail(reason string) error {
	if err := t.transition(StatusFailed); err != nil {
		return err
	}
	t.FailureReason = &reason
	return nil
}

func (t *Transaction) Cancel() error {
	return t.transition(StatusCanceled)
}

// MatchesIntent reports whether intentID is the intent stored on this transaction.
func (t *Transaction) MatchesIntent(intentID string) bool {
	return t.GatewayIntentID != nil && *t.GatewayIntentID == intentID
}

// helper to identify transaction statuses that are terminal
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case StatusSucceeded, StatusCanceled:
		return true
	default:
		return false
	}
}

func (t *Transaction) transition(target TransactionStatus) error {
	if err := t.canTransitionTo(target); err != nil {
		return err
	}
	t.Status = target
	t.UpdatedAt = time.Now()
	t.ReconcileAttempts = 0
	t.NextReconcileAt = nil
	t.ReconcileAbandoned = false
	return nil
}

// defines the statuses each status may move to
func (t *Transaction) canTransitionTo(target TransactionStatus) error {
	switch t.Status {
	case StatusPending:
		return t.allow(target, StatusRequiresConfirmation, StatusCanceled)
	case StatusRequiresConfirmation:
		return t.allow(target, StatusSucceeded, StatusFailed, StatusCanceled)
	case StatusFailed:
		return t.allow(target, StatusRequiresConfirmation, StatusSucceeded, StatusCanceled)
	case StatusSucceeded, StatusCanceled:
		return NewInvalidTransitionError(t.Status, target)
	}
	return NewInvalidTransitionError(t.Status, target)
}

// Helper to check allowed state transitions
func (t *Transaction) allow(target TransactionStatus, allowed ...TransactionStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(t.Status, target)
}

// Reconstitute - Special constructor for loading from DB
func Reconstitute(
	id, token string,
	planID, contactID, botID int64,
	amount int64, currency string,
	status TransactionStatus,
	gatewayIntentID, failureReason *string,
	createdAt, updatedAt time.Time,
	confirmedAt *time.Time,
) *Transaction {
	return &Transaction{
		ID:              id,
		Token:           token,
		PaymentPlanID:   planID,
		ContactID:       contactID,
		BotID:           botID,
		AmountCents:     amount,
		Currency:        currency,
		Status:          status,
		GatewayIntentID: gatewayIntentID,
		FailureReason:   failureReason,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		ConfirmedAt:     confirmedAt,
	}
}
