package telegram_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application/services/testhelpers"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/telegram"
	"github.com/DanielPopoola/groupgate/internal/mocks"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	policy  = retry.Policy{BaseDelay: time.Millisecond, MaxRetries: 3}
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	contact = &domain.Contact{ID: 1, TelegramUserID: 555, FirstName: "Alice"}
)

func newRegistry(t *testing.T, api telegram.BotAPI) (*telegram.BotRegistry, *int) {
	t.Helper()
	store := testhelpers.NewMemStore()
	testhelpers.Seed(store)
	created := 0
	return telegram.NewBotRegistry(store, func(token string) (telegram.BotAPI, error) {
		created++
		assert.Equal(t, "123:abc", token)
		return api, nil
	}), &created
}

func banFor(userID int64) interface{} {
	return mock.MatchedBy(func(p *bot.BanChatMemberParams) bool {
		return p.UserID == userID && p.ChatID == testhelpers.TestGroupChatID
	})
}

func TestEnforcer_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("bans then unbans", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		enforcer := telegram.NewEnforcer(registry, policy, discard)

		api.EXPECT().BanChatMember(mock.Anything, banFor(555)).Return(true, nil).Once()
		api.EXPECT().UnbanChatMember(mock.Anything, mock.MatchedBy(func(p *bot.UnbanChatMemberParams) bool {
			return p.OnlyIfBanned && p.UserID == 555
		})).Return(true, nil).Once()

		require.NoError(t, enforcer.Remove(ctx, testhelpers.TestBotID, contact))
	})

	t.Run("absent member is success", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		enforcer := telegram.NewEnforcer(registry, policy, discard)

		api.EXPECT().BanChatMember(mock.Anything, banFor(555)).
			Return(false, fmt.Errorf("%w, %s", bot.ErrorBadRequest, "Bad Request: PARTICIPANT_ID_INVALID")).
			Once()

		require.NoError(t, enforcer.Remove(ctx, testhelpers.TestBotID, contact))
	})

	t.Run("retries transient failures then gives up", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		enforcer := telegram.NewEnforcer(registry, policy, discard)

		api.EXPECT().BanChatMember(mock.Anything, banFor(555)).
			Return(false, errors.New("error response from telegram for method banChatMember, 502")).
			Times(3)

		err := enforcer.Remove(ctx, testhelpers.TestBotID, contact)

		assert.ErrorContains(t, err, "maximum retries exceeded")
	})

	t.Run("forbidden is not retried", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		enforcer := telegram.NewEnforcer(registry, policy, discard)

		api.EXPECT().BanChatMember(mock.Anything, banFor(555)).
			Return(false, fmt.Errorf("%w, %s", bot.ErrorForbidden, "Forbidden: bot is not a member of the supergroup chat")).
			Once()

		assert.ErrorIs(t, enforcer.Remove(ctx, testhelpers.TestBotID, contact), bot.ErrorForbidden)
	})

	t.Run("unknown bot fails", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		enforcer := telegram.NewEnforcer(registry, policy, discard)

		assert.ErrorIs(t, enforcer.Remove(ctx, 999, contact), domain.ErrBotNotFound)
	})
}

func TestNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("sends expiring notice to private chat", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, created := newRegistry(t, api)
		notifier := telegram.NewNotifier(registry, policy, discard)

		api.EXPECT().SendMessage(mock.Anything, mock.MatchedBy(func(p *bot.SendMessageParams) bool {
			return p.ChatID == int64(555) && p.Text == telegram.ExpiringMessage(contact, 3)
		})).Return(&models.Message{ID: 1}, nil).Twice()

		require.NoError(t, notifier.NotifyExpiring(ctx, testhelpers.TestBotID, contact, 3))
		require.NoError(t, notifier.NotifyExpiring(ctx, testhelpers.TestBotID, contact, 3))
		assert.Equal(t, 1, *created)
	})

	t.Run("blocked bot surfaces error", func(t *testing.T) {
		api := mocks.NewMockBotAPI(t)
		registry, _ := newRegistry(t, api)
		notifier := telegram.NewNotifier(registry, policy, discard)

		api.EXPECT().SendMessage(mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w, %s", bot.ErrorForbidden, "Forbidden: bot was blocked by the user")).
			Once()

		err := notifier.NotifyExpired(ctx, testhelpers.TestBotID, contact)

		assert.ErrorIs(t, err, bot.ErrorForbidden)
	})
}

func TestMessages(t *testing.T) {
	assert.Contains(t, telegram.ExpiringMessage(contact, 1), "expires in 1 day.")
	assert.Contains(t, telegram.ExpiredMessage(&domain.Contact{Username: "bob"}), "Hi @bob")
}
