package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AccessWindowRepository struct {
	q Executor
}

func NewAccessWindowRepository(db *DB) *AccessWindowRepository {
	return &AccessWindowRepository{q: db.Pool}
}

func (r *AccessWindowRepository) Find(ctx context.Context, contactID, botID int64) (*domain.AccessWindow, error) {
	query := `SELECT ` + windowColumns + ` FROM access_windows WHERE contact_id = $1 AND bot_id = $2`
	return scanWindow(r.q.QueryRow(ctx, query, contactID, botID))
}

// FindForUpdate locks the contact row before reading its window. A missing window row
// cannot be locked, so the contact lock is what serializes two first payments.
func (r *AccessWindowRepository) FindForUpdate(ctx context.Context, contactID, botID int64) (*domain.AccessWindow, error) {
	var locked int64
	err := r.q.QueryRow(ctx, `SELECT id FROM contacts WHERE id = $1 FOR UPDATE`, contactID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to lock contact: %w", err)
	}

	query := `SELECT ` + windowColumns + ` FROM access_windows WHERE contact_id = $1 AND bot_id = $2 FOR UPDATE`
	return scanWindow(r.q.QueryRow(ctx, query, contactID, botID))
}

// Upsert overwrites the single window row for (contact, bot).
func (r *AccessWindowRepository) Upsert(ctx context.Context, w *domain.AccessWindow) error {
	query := `
		INSERT INTO access_windows (` + windowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (contact_id, bot_id) DO UPDATE SET
			payment_plan_id = EXCLUDED.payment_plan_id,
			transaction_id = EXCLUDED.transaction_id,
			expires_at = EXCLUDED.expires_at,
			last_notified_expiring_at = EXCLUDED.last_notified_expiring_at,
			last_notified_expired_at = EXCLUDED.last_notified_expired_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.q.Exec(ctx, query,
		w.ContactID, w.BotID, w.PaymentPlanID, w.TransactionID, w.ExpiresAt,
		w.LastNotifiedExpiringAt, w.LastNotifiedExpiredAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert access window: %w", err)
	}
	return nil
}

func (r *AccessWindowRepository) ListTimeBoxed(ctx context.Context, botID int64) ([]*domain.AccessWindow, error) {
	query := `
		SELECT ` + windowColumns + `
		FROM access_windows
		WHERE bot_id = $1 AND expires_at IS NOT NULL
		ORDER BY expires_at ASC
	`
	rows, err := r.q.Query(ctx, query, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to query access windows: %w", err)
	}
	defer rows.Close()

	var out []*domain.AccessWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *AccessWindowRepository) MarkExpiredNotified(ctx context.Context, w *domain.AccessWindow, at time.Time) (bool, error) {
	return r.mark(ctx, "last_notified_expired_at", w, at)
}

func (r *AccessWindowRepository) MarkExpiringNotified(ctx context.Context, w *domain.AccessWindow, at time.Time) (bool, error) {
	return r.mark(ctx, "last_notified_expiring_at", w, at)
}

// mark only writes if expires_at still equals the value the scan classified.
func (r *AccessWindowRepository) mark(ctx context.Context, column string, w *domain.AccessWindow, at time.Time) (bool, error) {
	query := `
		UPDATE access_windows SET ` + column + ` = $3
		WHERE contact_id = $1 AND bot_id = $2 AND expires_at IS NOT DISTINCT FROM $4
	`
	tag, err := r.q.Exec(ctx, query, w.ContactID, w.BotID, at, w.ExpiresAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark %s: %w", column, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListMembership returns every contact of the bot, joined with its window when one exists.
func (r *AccessWindowRepository) ListMembership(ctx context.Context, botID int64) ([]application.Membership, error) {
	query := `
		SELECT c.id, c.bot_id, c.telegram_user_id, c.username, c.first_name, c.last_name, c.email,
		       w.payment_plan_id, w.transaction_id, w.expires_at,
		       w.last_notified_expiring_at, w.last_notified_expired_at, w.updated_at
		FROM contacts c
		LEFT JOIN access_windows w ON w.contact_id = c.id AND w.bot_id = c.bot_id
		WHERE c.bot_id = $1
		ORDER BY c.id ASC
	`
	rows, err := r.q.Query(ctx, query, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership: %w", err)
	}
	defer rows.Close()

	var out []application.Membership
	for rows.Next() {
		var (
			m             application.Membership
			planID        *int64
			transactionID *string
			expiresAt     *time.Time
			expiringAt    *time.Time
			expiredAt     *time.Time
			updatedAt     *time.Time
		)
		err := rows.Scan(
			&m.Contact.ID, &m.Contact.BotID, &m.Contact.TelegramUserID, &m.Contact.Username,
			&m.Contact.FirstName, &m.Contact.LastName, &m.Contact.Email,
			&planID, &transactionID, &expiresAt, &expiringAt, &expiredAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}
		if transactionID != nil {
			m.Window = &domain.AccessWindow{
				ContactID:              m.Contact.ID,
				BotID:                  botID,
				PaymentPlanID:          *planID,
				TransactionID:          *transactionID,
				ExpiresAt:              expiresAt,
				LastNotifiedExpiringAt: expiringAt,
				LastNotifiedExpiredAt:  expiredAt,
				UpdatedAt:              *updatedAt,
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
