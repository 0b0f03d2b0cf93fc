package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
)

type Scanner interface {
	CheckExpired(ctx context.Context, botID int64) (*services.ExpiredScanResult, error)
	CheckExpiring(ctx context.Context, botID int64, thresholdDays int) (*services.ExpiringScanResult, error)
}

// ExpirationWorker runs both scan modes for every bot on an interval.
type ExpirationWorker struct {
	bots          application.BotRepository
	scanner       Scanner
	interval      time.Duration
	thresholdDays int
	logger        *slog.Logger
}

func NewExpirationWorker(
	bots application.BotRepository,
	scanner Scanner,
	interval time.Duration,
	thresholdDays int,
	logger *slog.Logger,
) *ExpirationWorker {
	return &ExpirationWorker{
		bots:          bots,
		scanner:       scanner,
		interval:      interval,
		thresholdDays: thresholdDays,
		logger:        logger,
	}
}

func (w *ExpirationWorker) Start(ctx context.Context) {
	w.logger.Info("expiration worker started", "interval", w.interval, "threshold_days", w.thresholdDays)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.RunOnce(ctx); err != nil {
		w.logger.Error("expiration processing failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expiration worker stopping")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.Error("expiration processing failed", "error", err)
			}
		}
	}
}

// RunOnce scans each bot. A failing bot is logged and skipped.
func (w *ExpirationWorker) RunOnce(ctx context.Context) error {
	bots, err := w.bots.ListBots(ctx)
	if err != nil {
		return err
	}

	for _, bot := range bots {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger := w.logger.With("bot_id", bot.ID)

		// Reminders run before removals within a pass.
		if _, err := w.scanner.CheckExpiring(ctx, bot.ID, w.thresholdDays); err != nil {
			logger.Error("expiring scan failed", "error", err)
		}
		if _, err := w.scanner.CheckExpired(ctx, bot.ID); err != nil {
			logger.Error("expired scan failed", "error", err)
		}
	}
	return nil
}
