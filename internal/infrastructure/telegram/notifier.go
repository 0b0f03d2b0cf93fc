package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
	"github.com/go-telegram/bot"
)

type Notifier struct {
	registry *BotRegistry
	policy   retry.Policy
	logger   *slog.Logger
}

func NewNotifier(registry *BotRegistry, policy retry.Policy, logger *slog.Logger) *Notifier {
	return &Notifier{
		registry: registry,
		policy:   policy,
		logger:   logger,
	}
}

func (n *Notifier) NotifyExpired(ctx context.Context, botID int64, contact *domain.Contact) error {
	return n.send(ctx, botID, contact, ExpiredMessage(contact))
}

func (n *Notifier) NotifyExpiring(ctx context.Context, botID int64, contact *domain.Contact, daysRemaining int) error {
	return n.send(ctx, botID, contact, ExpiringMessage(contact, daysRemaining))
}

// send writes to the contact's private chat, which shares the user's id.
func (n *Notifier) send(ctx context.Context, botID int64, contact *domain.Contact, text string) error {
	client, err := n.registry.Client(ctx, botID)
	if err != nil {
		return err
	}

	_, err = retry.Do(ctx, n.policy, isTransient, func(ctx context.Context) (bool, error) {
		_, err := client.API.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: contact.TelegramUserID,
			Text:   text,
		})
		return err == nil, err
	})
	if err != nil {
		return fmt.Errorf("send message to contact %d: %w", contact.ID, err)
	}
	n.logger.Debug("notice sent", "bot_id", botID, "contact_id", contact.ID)
	return nil
}

func ExpiredMessage(c *domain.Contact) string {
	return fmt.Sprintf(
		"Hi %s, your subscription has expired and your access to the group was removed. Renew your plan to join again.",
		c.DisplayName(),
	)
}

func ExpiringMessage(c *domain.Contact, daysRemaining int) string {
	unit := "days"
	if daysRemaining == 1 {
		unit = "day"
	}
	return fmt.Sprintf(
		"Hi %s, your subscription expires in %d %s. Renew now to keep your access to the group.",
		c.DisplayName(), daysRemaining, unit,
	)
}
