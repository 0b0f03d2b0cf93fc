package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository reads bots, plans and contacts. These are owned by the admin side.
type CatalogRepository struct {
	q Executor
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{q: db.Pool}
}

func (r *CatalogRepository) FindPlan(ctx context.Context, planID int64) (*domain.PaymentPlan, error) {
	query := `
		SELECT p.id, p.title, p.price_cents, p.currency, p.cycle_id,
		       c.id, c.name, c.days, c.is_active
		FROM payment_plans p
		JOIN payment_cycles c ON c.id = p.cycle_id
		WHERE p.id = $1
	`
	var p domain.PaymentPlan
	err := r.q.QueryRow(ctx, query, planID).Scan(
		&p.ID, &p.Title, &p.PriceCents, &p.Currency, &p.CycleID,
		&p.Cycle.ID, &p.Cycle.Name, &p.Cycle.Days, &p.Cycle.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepository) FindContact(ctx context.Context, contactID int64) (*domain.Contact, error) {
	query := `
		SELECT id, bot_id, telegram_user_id, username, first_name, last_name, email
		FROM contacts WHERE id = $1
	`
	var c domain.Contact
	err := r.q.QueryRow(ctx, query, contactID).Scan(
		&c.ID, &c.BotID, &c.TelegramUserID, &c.Username, &c.FirstName, &c.LastName, &c.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepository) FindBot(ctx context.Context, botID int64) (*domain.Bot, error) {
	query := `SELECT id, name, token, group_chat_id FROM bots WHERE id = $1`
	var b domain.Bot
	err := r.q.QueryRow(ctx, query, botID).Scan(&b.ID, &b.Name, &b.Token, &b.GroupChatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBotNotFound
		}
		return nil, fmt.Errorf("failed to load bot: %w", err)
	}
	return &b, nil
}

func (r *CatalogRepository) ListBots(ctx context.Context) ([]*domain.Bot, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, token, group_chat_id FROM bots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}
	defer rows.Close()

	var out []*domain.Bot
	for rows.Next() {
		var b domain.Bot
		if err := rows.Scan(&b.ID, &b.Name, &b.Token, &b.GroupChatID); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// The Create methods seed reference data for local runs and tests.

func (r *CatalogRepository) CreateBot(ctx context.Context, b *domain.Bot) error {
	return r.q.QueryRow(ctx,
		`INSERT INTO bots (name, token, group_chat_id) VALUES ($1, $2, $3) RETURNING id`,
		b.Name, b.Token, b.GroupChatID,
	).Scan(&b.ID)
}

func (r *CatalogRepository) CreatePlan(ctx context.Context, p *domain.PaymentPlan) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO payment_cycles (name, days, is_active) VALUES ($1, $2, $3) RETURNING id`,
		p.Cycle.Name, p.Cycle.Days, p.Cycle.IsActive,
	).Scan(&p.Cycle.ID)
	if err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}
	p.CycleID = p.Cycle.ID
	return r.q.QueryRow(ctx,
		`INSERT INTO payment_plans (title, price_cents, currency, cycle_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Title, p.PriceCents, p.Currency, p.CycleID,
	).Scan(&p.ID)
}

func (r *CatalogRepository) CreateContact(ctx context.Context, c *domain.Contact) error {
	return r.q.QueryRow(ctx, `
		INSERT INTO contacts (bot_id, telegram_user_id, username, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.BotID, c.TelegramUserID, c.Username, c.FirstName, c.LastName, c.Email,
	).Scan(&c.ID)
}
