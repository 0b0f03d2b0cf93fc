package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/groupgate/internal/domain"
)

// GatewayClient is the port for the external card-payment processor.
type GatewayClient interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error)
	GetPublicConfig(ctx context.Context) (*PublicConfig, error)
	GetIntentStatus(ctx context.Context, intentID string) (*IntentStatusResponse, error)
}

type CreateIntentRequest struct {
	IdempotencyKey string
	AmountCents    int64
	Currency       string
	Metadata       map[string]string
}

type IntentResponse struct {
	IntentID     string
	ClientSecret string
	Status       string
}

type PublicConfig struct {
	PublicKey string
}

type IntentStatusResponse struct {
	IntentID      string
	Status        string
	FailureReason string
	AmountCents   int64
}

// GatewayError is a response the gateway sent back, or a failure to reach it.
type GatewayError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429 || e.StatusCode == 0
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

type TransactionRepository interface {
	FindByToken(ctx context.Context, token string) (*domain.Transaction, error)
	FindByTokenForUpdate(ctx context.Context, token string) (*domain.Transaction, error)
	// AttachIntent stores the intent only if the row has none or the same one.
	// It returns domain.ErrIntentAlreadyAttached when another intent won.
	AttachIntent(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	// FindAwaitingReconciliation returns due rows, least recently attempted first.
	FindAwaitingReconciliation(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.Transaction, error)
	// ScheduleReconciliation records an attempt count and the next due time.
	// A nil next abandons automatic reconciliation until the status changes.
	ScheduleReconciliation(ctx context.Context, token string, attempts int, next *time.Time) error
}

type PlanRepository interface {
	FindPlan(ctx context.Context, planID int64) (*domain.PaymentPlan, error)
}

type ContactRepository interface {
	FindContact(ctx context.Context, contactID int64) (*domain.Contact, error)
}

type BotRepository interface {
	FindBot(ctx context.Context, botID int64) (*domain.Bot, error)
	ListBots(ctx context.Context) ([]*domain.Bot, error)
}

// Membership pairs a bot contact with its access window, if any.
type Membership struct {
	Contact domain.Contact
	Window  *domain.AccessWindow
}

// AccessWindowRepository stores one window per (contact, bot).
type AccessWindowRepository interface {
	Find(ctx context.Context, contactID, botID int64) (*domain.AccessWindow, error)
	FindForUpdate(ctx context.Context, contactID, botID int64) (*domain.AccessWindow, error)
	Upsert(ctx context.Context, w *domain.AccessWindow) error
	ListTimeBoxed(ctx context.Context, botID int64) ([]*domain.AccessWindow, error)
	// Marker writes compare against w.ExpiresAt and report false when the window moved.
	MarkExpiredNotified(ctx context.Context, w *domain.AccessWindow, at time.Time) (bool, error)
	MarkExpiringNotified(ctx context.Context, w *domain.AccessWindow, at time.Time) (bool, error)
	ListMembership(ctx context.Context, botID int64) ([]Membership, error)
}

// Repositories is the set of stores bound to one database transaction.
type Repositories struct {
	Transactions TransactionRepository
	Plans        PlanRepository
	Windows      AccessWindowRepository
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// MembershipEnforcer removes a contact from the bot's group.
// Removing an absent member succeeds.
type MembershipEnforcer interface {
	Remove(ctx context.Context, botID int64, contact *domain.Contact) error
}

type Notifier interface {
	NotifyExpired(ctx context.Context, botID int64, contact *domain.Contact) error
	NotifyExpiring(ctx context.Context, botID int64, contact *domain.Contact, daysRemaining int) error
}

// Metrics is the recorder the services report to. NopMetrics discards everything.
type Metrics interface {
	IntentCreated()
	ConfirmationOutcome(outcome string)
	ReconciliationRequired()
	ScanCandidates(mode string, n int)
	ScanSideEffect(mode, action, result string)
}

type NopMetrics struct{}

func (NopMetrics) IntentCreated() {}
func (NopMetrics) ConfirmationOutcome(string) {}
func (NopMetrics) ReconciliationRequired() {}
func (NopMetrics) ScanCandidates(string, int) {}
func (NopMetrics) ScanSideEffect(string, string, string) {}
