package telegram

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
	"github.com/go-telegram/bot"
)

// Enforcer removes expired members from a bot's group chat.
type Enforcer struct {
	registry *BotRegistry
	policy   retry.Policy
	logger   *slog.Logger
}

func NewEnforcer(registry *BotRegistry, policy retry.Policy, logger *slog.Logger) *Enforcer {
	return &Enforcer{
		registry: registry,
		policy:   policy,
		logger:   logger,
	}
}

// Remove bans then immediately unbans so the contact can rejoin after renewing.
// A contact who already left counts as removed.
func (e *Enforcer) Remove(ctx context.Context, botID int64, contact *domain.Contact) error {
	client, err := e.registry.Client(ctx, botID)
	if err != nil {
		return err
	}

	_, err = retry.Do(ctx, e.policy, isTransient, func(ctx context.Context) (bool, error) {
		return client.API.BanChatMember(ctx, &bot.BanChatMemberParams{
			ChatID: client.GroupChatID,
			UserID: contact.TelegramUserID,
		})
	})
	if err != nil {
		if isAbsentMember(err) {
			e.logger.Debug("member already absent", "bot_id", botID, "contact_id", contact.ID)
			return nil
		}
		return err
	}

	_, err = retry.Do(ctx, e.policy, isTransient, func(ctx context.Context) (bool, error) {
		return client.API.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{
			ChatID:       client.GroupChatID,
			UserID:       contact.TelegramUserID,
			OnlyIfBanned: true,
		})
	})
	if err != nil {
		e.logger.Warn("member removed but unban failed, contact cannot rejoin until unbanned",
			"bot_id", botID,
			"contact_id", contact.ID,
			"error", err,
		)
	}
	return nil
}
