// Package telegram removes members and delivers notices through the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotAPI is the subset of *bot.Bot used here.
type BotAPI interface {
	BanChatMember(ctx context.Context, params *bot.BanChatMemberParams) (bool, error)
	UnbanChatMember(ctx context.Context, params *bot.UnbanChatMemberParams) (bool, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type ClientFactory func(token string) (BotAPI, error)

// NewClientFactory returns a factory building real clients. getMe is skipped so that
// a bad token surfaces on first use rather than at startup.
func NewClientFactory(cfg config.TelegramConfig) ClientFactory {
	return func(token string) (BotAPI, error) {
		opts := []bot.Option{
			bot.WithSkipGetMe(),
			bot.WithHTTPClient(cfg.RequestTimeout, &http.Client{Timeout: cfg.RequestTimeout}),
		}
		if cfg.APIBaseURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.APIBaseURL))
		}
		b, err := bot.New(token, opts...)
		if err != nil {
			return nil, fmt.Errorf("create telegram client: %w", err)
		}
		return b, nil
	}
}

type BotClient struct {
	API         BotAPI
	GroupChatID int64
}

// BotRegistry caches one client per bot for the life of the process.
type BotRegistry struct {
	bots    application.BotRepository
	factory ClientFactory

	mu      sync.Mutex
	clients map[int64]*BotClient
}

func NewBotRegistry(bots application.BotRepository, factory ClientFactory) *BotRegistry {
	return &BotRegistry{
		bots:    bots,
		factory: factory,
		clients: make(map[int64]*BotClient),
	}
}

func (r *BotRegistry) Client(ctx context.Context, botID int64) (*BotClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[botID]; ok {
		return c, nil
	}

	b, err := r.bots.FindBot(ctx, botID)
	if err != nil {
		return nil, err
	}
	api, err := r.factory(b.Token)
	if err != nil {
		return nil, err
	}

	c := &BotClient{API: api, GroupChatID: b.GroupChatID}
	r.clients[botID] = c
	return c, nil
}

// isTransient reports whether a Bot API failure is worth retrying.
// Telegram's 4xx answers are final; rate limits, 5xx and transport errors are not.
func isTransient(err error) bool {
	if bot.IsTooManyRequestsError(err) {
		return true
	}
	switch {
	case errors.Is(err, bot.ErrorBadRequest),
		errors.Is(err, bot.ErrorForbidden),
		errors.Is(err, bot.ErrorUnauthorized),
		errors.Is(err, bot.ErrorNotFound),
		errors.Is(err, domain.ErrBotNotFound):
		return false
	}
	return true
}

var absentMemberMarkers = []string{
	"user not found",
	"participant_id_invalid",
	"user_not_participant",
	"not a member",
	"member not found",
}

// isAbsentMember matches the bad request answers Telegram gives for users not in the chat.
func isAbsentMember(err error) bool {
	if !errors.Is(err, bot.ErrorBadRequest) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range absentMemberMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
