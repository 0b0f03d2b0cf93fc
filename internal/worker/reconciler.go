package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

type Confirmer interface {
	Confirm(ctx context.Context, cmd services.ConfirmCommand) (*services.ConfirmResult, error)
}

type ReconcileRepository interface {
	FindAwaitingReconciliation(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.Transaction, error)
	ScheduleReconciliation(ctx context.Context, token string, attempts int, next *time.Time) error
}

// Reconciler re-runs confirmation for transactions that hold a gateway intent but never
// reached a final state locally, which covers payments whose finalize failed after capture.
//
// Every attempt that does not settle the row pushes its next attempt out with exponential
// backoff, so rows that stay unpaid cannot hold the head of the batch. A declined payment
// method ends automatic attempts until the transaction changes status again.
type Reconciler struct {
	repo       ReconcileRepository
	confirmer  Confirmer
	interval   time.Duration
	after      time.Duration
	maxBackoff time.Duration
	batchSize  int
	logger     *slog.Logger
	now        func() time.Time
}

func NewReconciler(
	repo ReconcileRepository,
	confirmer Confirmer,
	interval time.Duration,
	after time.Duration,
	maxBackoff time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Reconciler {
	if maxBackoff < interval {
		maxBackoff = interval
	}
	return &Reconciler{
		repo:       repo,
		confirmer:  confirmer,
		interval:   interval,
		after:      after,
		maxBackoff: maxBackoff,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting background reconciler", "interval", r.interval, "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping background reconciler")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// ReconcileStats counts the outcome of one cycle.
type ReconcileStats struct {
	Checked    int
	Reconciled int
	Pending    int
	Failed     int
	Abandoned  int
}

// RunOnce executes a single reconciliation cycle.
func (r *Reconciler) RunOnce(ctx context.Context) ReconcileStats {
	var stats ReconcileStats

	awaiting, err := r.repo.FindAwaitingReconciliation(ctx, r.after, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch transactions awaiting reconciliation", "error", err)
		return stats
	}
	if len(awaiting) == 0 {
		return stats
	}

	r.logger.Info("reconciling transactions", "count", len(awaiting))

	for _, tx := range awaiting {
		if ctx.Err() != nil {
			break
		}
		if tx.GatewayIntentID == nil {
			continue
		}
		stats.Checked++

		logger := r.logger.With("transaction_id", tx.ID, "intent_id", *tx.GatewayIntentID)
		_, err := r.confirmer.Confirm(ctx, services.ConfirmCommand{
			Token:           tx.Token,
			GatewayIntentID: *tx.GatewayIntentID,
		})

		attempts := tx.ReconcileAttempts + 1
		next := r.now().Add(r.backoff(attempts))

		switch {
		case err == nil:
			stats.Reconciled++
			logger.Info("transaction reconciled")
			continue
		case errors.Is(err, domain.ErrPaymentDeclined):
			stats.Abandoned++
			logger.Info("payment method declined, stopping reconciliation", "attempts", attempts)
			r.schedule(ctx, logger, tx, attempts, nil)
			continue
		case application.HasCode(err, application.ErrCodePendingAuthentication),
			application.HasCode(err, application.ErrCodeGatewayRejected):
			stats.Pending++
			logger.Debug("transaction not payable yet", "error", err, "next_attempt_at", next)
		default:
			stats.Failed++
			logger.Error("reconciliation failed",
				"category", application.CategorizeError(err),
				"error", err,
				"next_attempt_at", next,
			)
		}
		r.schedule(ctx, logger, tx, attempts, &next)
	}

	return stats
}

func (r *Reconciler) schedule(ctx context.Context, logger *slog.Logger, tx *domain.Transaction, attempts int, next *time.Time) {
	if err := r.repo.ScheduleReconciliation(ctx, tx.Token, attempts, next); err != nil {
		logger.Error("failed to record reconciliation attempt", "error", err)
	}
}

// backoff doubles the tick interval per attempt, capped at maxBackoff.
func (r *Reconciler) backoff(attempts int) time.Duration {
	d := r.interval
	for i := 1; i < attempts && d < r.maxBackoff; i++ {
		d *= 2
	}
	return min(d, r.maxBackoff)
}
