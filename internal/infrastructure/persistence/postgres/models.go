package postgres

import (
	"errors"
	"time"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `
	id, token, payment_plan_id, contact_id, bot_id, amount_cents, currency, status,
	gateway_intent_id, failure_reason, created_at, updated_at, confirmed_at,
	reconcile_attempts, next_reconcile_at, reconcile_abandoned`

const windowColumns = `
	contact_id, bot_id, payment_plan_id, transaction_id, expires_at,
	last_notified_expiring_at, last_notified_expired_at, updated_at`

type transactionRow struct {
	ID              string
	Token           string
	PaymentPlanID   int64
	ContactID       int64
	BotID           int64
	AmountCents     int64
	Currency        string
	Status          string
	GatewayIntentID *string
	FailureReason   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time

	ReconcileAttempts  int
	NextReconcileAt    *time.Time
	ReconcileAbandoned bool
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var r transactionRow
	err := row.Scan(
		&r.ID, &r.Token, &r.PaymentPlanID, &r.ContactID, &r.BotID, &r.AmountCents, &r.Currency, &r.Status,
		&r.GatewayIntentID, &r.FailureReason, &r.CreatedAt, &r.UpdatedAt, &r.ConfirmedAt,
		&r.ReconcileAttempts, &r.NextReconcileAt, &r.ReconcileAbandoned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	tx := domain.Reconstitute(
		r.ID, r.Token,
		r.PaymentPlanID, r.ContactID, r.BotID,
		r.AmountCents, r.Currency,
		domain.TransactionStatus(r.Status),
		r.GatewayIntentID, r.FailureReason,
		r.CreatedAt, r.UpdatedAt,
		r.ConfirmedAt,
	)
	tx.ReconcileAttempts = r.ReconcileAttempts
	tx.NextReconcileAt = r.NextReconcileAt
	tx.ReconcileAbandoned = r.ReconcileAbandoned
	return tx, nil
}

func scanWindow(row pgx.Row) (*domain.AccessWindow, error) {
	var w domain.AccessWindow
	err := row.Scan(
		&w.ContactID, &w.BotID, &w.PaymentPlanID, &w.TransactionID, &w.ExpiresAt,
		&w.LastNotifiedExpiringAt, &w.LastNotifiedExpiredAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccessWindowNotFound
		}
		return nil, err
	}
	return &w, nil
}
