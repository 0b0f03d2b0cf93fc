package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

type IntentResult struct {
	ClientSecret    string
	PaymentIntentID string
	PublicKey       string
}

// IntentService creates gateway intents for transaction tokens.
type IntentService struct {
	transactions application.TransactionRepository
	gateway      application.GatewayClient
	metrics      application.Metrics
	logger       *slog.Logger

	mu        sync.Mutex
	publicCfg *application.PublicConfig
}

func NewIntentService(
	transactions application.TransactionRepository,
	gateway application.GatewayClient,
	metrics application.Metrics,
	logger *slog.Logger,
) *IntentService {
	return &IntentService{
		transactions: transactions,
		gateway:      gateway,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *IntentService) CreateIntent(ctx context.Context, cmd CreateIntentCommand) (*IntentResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	tx, err := s.loadTransaction(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	if tx.IsTerminal() {
		return nil, application.NewInvalidStateError(domain.NewInvalidTransitionError(tx.Status, domain.StatusRequiresConfirmation))
	}

	pub, err := s.publicConfig(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.CreateIntent(ctx, application.CreateIntentRequest{
		IdempotencyKey: tx.Token,
		AmountCents:    tx.AmountCents,
		Currency:       tx.Currency,
		Metadata: map[string]string{
			"token":          tx.Token,
			"transaction_id": tx.ID,
			"bot_id":         strconv.FormatInt(tx.BotID, 10),
			"contact_id":     strconv.FormatInt(tx.ContactID, 10),
		},
	})
	if err != nil {
		s.logger.Warn("create intent failed", "token", tx.Token, "error", err)
		return nil, mapGatewayError(err)
	}

	if err := tx.AttachIntent(resp.IntentID); err != nil {
		if errors.Is(err, domain.ErrIntentMismatch) {
			return nil, application.NewConflictError(err)
		}
		return nil, application.NewInvalidStateError(err)
	}

	if err := s.transactions.AttachIntent(ctx, tx); err != nil {
		if errors.Is(err, domain.ErrIntentAlreadyAttached) {
			return nil, application.NewConflictError(err)
		}
		return nil, application.NewInternalError(err)
	}

	s.metrics.IntentCreated()
	s.logger.Info("payment intent attached",
		"token", tx.Token,
		"transaction_id", tx.ID,
		"intent_id", resp.IntentID,
	)

	return &IntentResult{
		ClientSecret:    resp.ClientSecret,
		PaymentIntentID: resp.IntentID,
		PublicKey:       pub.PublicKey,
	}, nil
}

// PublicConfig returns the gateway publishable key for a known token.
func (s *IntentService) PublicConfig(ctx context.Context, token string) (*application.PublicConfig, error) {
	if err := validateCommand(CreateIntentCommand{Token: token}); err != nil {
		return nil, err
	}
	if _, err := s.loadTransaction(ctx, token); err != nil {
		return nil, err
	}
	return s.publicConfig(ctx)
}

func (s *IntentService) loadTransaction(ctx context.Context, token string) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, application.NewNotFoundError("transaction", err)
		}
		return nil, application.NewInternalError(err)
	}
	return tx, nil
}

// publicConfig is fetched once per process. Failures are not cached.
func (s *IntentService) publicConfig(ctx context.Context) (*application.PublicConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.publicCfg != nil {
		return s.publicCfg, nil
	}

	cfg, err := s.gateway.GetPublicConfig(ctx)
	if err != nil {
		return nil, mapGatewayError(err)
	}
	if cfg.PublicKey == "" {
		return nil, application.NewInvalidInputError(domain.ErrGatewayNotConfigured)
	}
	s.publicCfg = cfg
	return cfg, nil
}
