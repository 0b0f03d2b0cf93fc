package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

const (
	OutcomeConfirmed              = "confirmed"
	OutcomeAlreadyConfirmed       = "already_confirmed"
	OutcomePendingAuthentication  = "pending_authentication"
	OutcomeRejected               = "rejected"
	OutcomeConflict               = "conflict"
	OutcomeReconciliationRequired = "reconciliation_required"
)

type ConfirmResult struct {
	Transaction      *domain.Transaction
	Window           *domain.AccessWindow
	AlreadyConfirmed bool
}

// ConfirmationService finalizes payments the client completed with the gateway.
type ConfirmationService struct {
	transactions application.TransactionRepository
	windows      application.AccessWindowRepository
	txRunner     application.TxRunner
	gateway      application.GatewayClient
	metrics      application.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

func NewConfirmationService(
	transactions application.TransactionRepository,
	windows application.AccessWindowRepository,
	txRunner application.TxRunner,
	gateway application.GatewayClient,
	metrics application.Metrics,
	logger *slog.Logger,
) *ConfirmationService {
	return &ConfirmationService{
		transactions: transactions,
		windows:      windows,
		txRunner:     txRunner,
		gateway:      gateway,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ConfirmationService) WithClock(now func() time.Time) *ConfirmationService {
	s.now = now
	return s
}

// Confirm checks the intent with the gateway and, on success, marks the transaction
// succeeded and extends the access window in one unit. Repeating a confirmed call
// returns the recorded result without extending again.
func (s *ConfirmationService) Confirm(ctx context.Context, cmd ConfirmCommand) (*ConfirmResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	logger := s.logger.With("token", cmd.Token, "intent_id", cmd.GatewayIntentID)

	tx, err := s.transactions.FindByToken(ctx, cmd.Token)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, application.NewNotFoundError("transaction", err)
		}
		return nil, application.NewInternalError(err)
	}

	if !tx.MatchesIntent(cmd.GatewayIntentID) {
		s.metrics.ConfirmationOutcome(OutcomeConflict)
		stored := ""
		if tx.GatewayIntentID != nil {
			stored = *tx.GatewayIntentID
		}
		logger.Warn("confirmation intent mismatch", "transaction_id", tx.ID, "stored_intent_id", stored)
		return nil, application.NewConflictError(domain.NewIntentMismatchError(stored, cmd.GatewayIntentID))
	}

	switch tx.Status {
	case domain.StatusSucceeded:
		return s.priorResult(ctx, tx)
	case domain.StatusCanceled:
		return nil, application.NewInvalidStateError(domain.NewInvalidTransitionError(tx.Status, domain.StatusSucceeded))
	}

	intent, err := s.gateway.GetIntentStatus(ctx, cmd.GatewayIntentID)
	if err != nil {
		logger.Warn("intent status lookup failed", "error", err)
		return nil, mapGatewayError(err)
	}

	status, err := domain.ParseGatewayStatus(intent.Status)
	if err != nil {
		logger.Error("unrecognized gateway status", "status", intent.Status)
		s.metrics.ConfirmationOutcome(OutcomeRejected)
		return nil, application.NewGatewayRejectedError("Payment is in an unrecognized state", err)
	}

	switch status {
	case domain.GatewaySucceeded:
		return s.finalize(ctx, cmd, logger)

	case domain.GatewayRequiresAction:
		s.metrics.ConfirmationOutcome(OutcomePendingAuthentication)
		return nil, application.NewPendingAuthenticationError()

	case domain.GatewayRequiresPaymentMethod:
		reason := intent.FailureReason
		if reason == "" {
			reason = "Payment method was declined"
		}
		s.recordFailure(ctx, cmd, reason, logger)
		s.metrics.ConfirmationOutcome(OutcomeRejected)
		return nil, application.NewGatewayRejectedError(reason, domain.ErrPaymentDeclined)

	case domain.GatewayCanceled:
		s.recordCancel(ctx, cmd, logger)
		s.metrics.ConfirmationOutcome(OutcomeRejected)
		return nil, application.NewGatewayRejectedError("Payment was canceled", nil)

	case domain.GatewayRequiresConfirmation, domain.GatewayProcessing, domain.GatewayRequiresCapture:
		s.metrics.ConfirmationOutcome(OutcomeRejected)
		return nil, application.NewGatewayRejectedError(fmt.Sprintf("Payment is not complete (%s)", status), nil)
	}

	return nil, application.NewInternalError(fmt.Errorf("unhandled gateway status %q", status))
}

func (s *ConfirmationService) finalize(ctx context.Context, cmd ConfirmCommand, logger *slog.Logger) (*ConfirmResult, error) {
	var result *ConfirmResult

	err := s.txRunner.WithTx(ctx, func(ctx context.Context, repos application.Repositories) error {
		tx, err := repos.Transactions.FindByTokenForUpdate(ctx, cmd.Token)
		if err != nil {
			return fmt.Errorf("lock transaction: %w", err)
		}
		if !tx.MatchesIntent(cmd.GatewayIntentID) {
			stored := ""
			if tx.GatewayIntentID != nil {
				stored = *tx.GatewayIntentID
			}
			return domain.NewIntentMismatchError(stored, cmd.GatewayIntentID)
		}

		// A concurrent confirmation won the lock first.
		if tx.Status == domain.StatusSucceeded {
			window, err := findWindow(ctx, repos.Windows, tx)
			if err != nil {
				return err
			}
			result = &ConfirmResult{Transaction: tx, Window: window, AlreadyConfirmed: true}
			return nil
		}

		plan, err := repos.Plans.FindPlan(ctx, tx.PaymentPlanID)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}

		window, err := repos.Windows.FindForUpdate(ctx, tx.ContactID, tx.BotID)
		if err != nil {
			if !errors.Is(err, domain.ErrAccessWindowNotFound) {
				return fmt.Errorf("lock access window: %w", err)
			}
			window = domain.NewAccessWindow(tx.ContactID, tx.BotID)
		}

		now := s.now()
		if err := tx.Succeed(now); err != nil {
			return err
		}
		window.Renew(plan, tx.ID, now)

		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		if err := repos.Windows.Upsert(ctx, window); err != nil {
			return fmt.Errorf("upsert access window: %w", err)
		}

		result = &ConfirmResult{Transaction: tx, Window: window}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrIntentMismatch) {
			s.metrics.ConfirmationOutcome(OutcomeConflict)
			return nil, application.NewConflictError(err)
		}
		s.metrics.ConfirmationOutcome(OutcomeReconciliationRequired)
		s.metrics.ReconciliationRequired()
		logger.Error("gateway captured payment but local finalize failed",
			"action", "RECONCILIATION_REQUIRED",
			"error", err,
		)
		// Make sure the reconciler picks it up even if it had given up on this row.
		now := s.now()
		if serr := s.transactions.ScheduleReconciliation(ctx, cmd.Token, 0, &now); serr != nil {
			logger.Warn("failed to schedule reconciliation", "error", serr)
		}
		return nil, application.NewReconciliationRequiredError(err)
	}

	if result.AlreadyConfirmed {
		s.metrics.ConfirmationOutcome(OutcomeAlreadyConfirmed)
		return result, nil
	}

	s.metrics.ConfirmationOutcome(OutcomeConfirmed)
	logger.Info("payment confirmed",
		"transaction_id", result.Transaction.ID,
		"bot_id", result.Transaction.BotID,
		"contact_id", result.Transaction.ContactID,
		"expires_at", result.Window.ExpiresAt,
	)
	return result, nil
}

func (s *ConfirmationService) priorResult(ctx context.Context, tx *domain.Transaction) (*ConfirmResult, error) {
	window, err := findWindow(ctx, s.windows, tx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	s.metrics.ConfirmationOutcome(OutcomeAlreadyConfirmed)
	return &ConfirmResult{Transaction: tx, Window: window, AlreadyConfirmed: true}, nil
}

// recordFailure is best effort; the caller reports the rejection either way.
func (s *ConfirmationService) recordFailure(ctx context.Context, cmd ConfirmCommand, reason string, logger *slog.Logger) {
	err := s.txRunner.WithTx(ctx, func(ctx context.Context, repos application.Repositories) error {
		tx, err := repos.Transactions.FindByTokenForUpdate(ctx, cmd.Token)
		if err != nil {
			return err
		}
		if !tx.MatchesIntent(cmd.GatewayIntentID) || tx.Status != domain.StatusRequiresConfirmation {
			return nil
		}
		if err := tx.Fail(reason); err != nil {
			return err
		}
		return repos.Transactions.Update(ctx, tx)
	})
	if err != nil {
		logger.Warn("failed to record payment failure", "error", err)
	}
}

func (s *ConfirmationService) recordCancel(ctx context.Context, cmd ConfirmCommand, logger *slog.Logger) {
	err := s.txRunner.WithTx(ctx, func(ctx context.Context, repos application.Repositories) error {
		tx, err := repos.Transactions.FindByTokenForUpdate(ctx, cmd.Token)
		if err != nil {
			return err
		}
		if !tx.MatchesIntent(cmd.GatewayIntentID) || tx.IsTerminal() {
			return nil
		}
		if err := tx.Cancel(); err != nil {
			return err
		}
		return repos.Transactions.Update(ctx, tx)
	})
	if err != nil {
		logger.Warn("failed to record payment cancel", "error", err)
	}
}

func findWindow(ctx context.Context, windows application.AccessWindowRepository, tx *domain.Transaction) (*domain.AccessWindow, error) {
	w, err := windows.Find(ctx, tx.ContactID, tx.BotID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessWindowNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load access window: %w", err)
	}
	return w, nil
}
