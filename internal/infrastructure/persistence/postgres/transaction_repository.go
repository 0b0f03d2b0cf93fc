package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/groupgate/internal/domain"
)

type TransactionRepository struct {
	q Executor
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// Create is used by seeding and tests; transactions are otherwise issued outside this service.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.Token, tx.PaymentPlanID, tx.ContactID, tx.BotID, tx.AmountCents, tx.Currency, string(tx.Status),
		tx.GatewayIntentID, tx.FailureReason, tx.CreatedAt, tx.UpdatedAt, tx.ConfirmedAt,
		tx.ReconcileAttempts, tx.NextReconcileAt, tx.ReconcileAbandoned,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByToken(ctx context.Context, token string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE token = $1`
	return scanTransaction(r.q.QueryRow(ctx, query, token))
}

// FindByTokenForUpdate locks the row until the surrounding transaction ends.
func (r *TransactionRepository) FindByTokenForUpdate(ctx context.Context, token string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE token = $1 FOR UPDATE`
	return scanTransaction(r.q.QueryRow(ctx, query, token))
}

func (r *TransactionRepository) AttachIntent(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET gateway_intent_id = $2, status = $3, failure_reason = $4, updated_at = $5,
		    reconcile_attempts = $6, next_reconcile_at = $7, reconcile_abandoned = $8
		WHERE token = $1 AND (gateway_intent_id IS NULL OR gateway_intent_id = $2)
	`
	tag, err := r.q.Exec(ctx, query,
		tx.Token, tx.GatewayIntentID, string(tx.Status), tx.FailureReason, tx.UpdatedAt,
		tx.ReconcileAttempts, tx.NextReconcileAt, tx.ReconcileAbandoned,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrIntentAlreadyAttached
		}
		return fmt.Errorf("failed to attach intent: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.FindByToken(ctx, tx.Token); err != nil {
		return err
	}
	return domain.ErrIntentAlreadyAttached
}

func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2, gateway_intent_id = $3, failure_reason = $4, updated_at = $5, confirmed_at = $6,
		    reconcile_attempts = $7, next_reconcile_at = $8, reconcile_abandoned = $9
		WHERE token = $1
	`
	tag, err := r.q.Exec(ctx, query,
		tx.Token, string(tx.Status), tx.GatewayIntentID, tx.FailureReason, tx.UpdatedAt, tx.ConfirmedAt,
		tx.ReconcileAttempts, tx.NextReconcileAt, tx.ReconcileAbandoned,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrIntentAlreadyAttached
		}
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// FindAwaitingReconciliation returns transactions holding an intent that never reached a final
// state and are due for another attempt. Rows never attempted are due once idle for olderThan.
func (r *TransactionRepository) FindAwaitingReconciliation(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE gateway_intent_id IS NOT NULL
		  AND status IN ('requires_confirmation', 'failed')
		  AND NOT reconcile_abandoned
		  AND updated_at < $1
		  AND (next_reconcile_at IS NULL OR next_reconcile_at <= $2)
		ORDER BY COALESCE(next_reconcile_at, updated_at) ASC
		LIMIT $3
	`
	now := time.Now()
	rows, err := r.q.Query(ctx, query, now.Add(-olderThan), now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) ScheduleReconciliation(ctx context.Context, token string, attempts int, next *time.Time) error {
	query := `
		UPDATE transactions
		SET reconcile_attempts = $2, next_reconcile_at = $3, reconcile_abandoned = $4
		WHERE token = $1
	`
	tag, err := r.q.Exec(ctx, query, token, attempts, next, next == nil)
	if err != nil {
		return fmt.Errorf("failed to schedule reconciliation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
