package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultScanConcurrency = 8
	MaxThresholdDays       = 365
)

type ExpiredScanResult struct {
	ExpiredCount  int `json:"expired_count"`
	RemovedCount  int `json:"removed_count"`
	NotifiedCount int `json:"notified_count"`
	FailedCount   int `json:"failed_count"`
}

type ExpiringScanResult struct {
	ExpiringCount int `json:"expiring_count"`
	NotifiedCount int `json:"notified_count"`
	FailedCount   int `json:"failed_count"`
}

// ScanResult holds the result of whichever mode ran.
type ScanResult struct {
	Mode     ScanMode
	Expired  *ExpiredScanResult
	Expiring *ExpiringScanResult
}

// ExpirationScanner classifies a bot's access windows and drives removal and reminders.
// Per-window failures are counted; only failing to read the store aborts a scan.
type ExpirationScanner struct {
	bots        application.BotRepository
	windows     application.AccessWindowRepository
	contacts    application.ContactRepository
	enforcer    application.MembershipEnforcer
	notifier    application.Notifier
	metrics     application.Metrics
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

func NewExpirationScanner(
	bots application.BotRepository,
	windows application.AccessWindowRepository,
	contacts application.ContactRepository,
	enforcer application.MembershipEnforcer,
	notifier application.Notifier,
	concurrency int,
	metrics application.Metrics,
	logger *slog.Logger,
) *ExpirationScanner {
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}
	return &ExpirationScanner{
		bots:        bots,
		windows:     windows,
		contacts:    contacts,
		enforcer:    enforcer,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (s *ExpirationScanner) WithClock(now func() time.Time) *ExpirationScanner {
	s.now = now
	return s
}

func (s *ExpirationScanner) Scan(ctx context.Context, cmd ScanCommand) (*ScanResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	switch cmd.Mode {
	case ModeCheckExpired:
		res, err := s.CheckExpired(ctx, cmd.BotID)
		if err != nil {
			return nil, err
		}
		return &ScanResult{Mode: cmd.Mode, Expired: res}, nil
	case ModeCheckExpiring:
		res, err := s.CheckExpiring(ctx, cmd.BotID, cmd.ThresholdDays)
		if err != nil {
			return nil, err
		}
		return &ScanResult{Mode: cmd.Mode, Expiring: res}, nil
	}
	return nil, application.NewInvalidInputError(fmt.Errorf("unknown scan mode %q", cmd.Mode))
}

// CheckExpired removes and notifies every expired window not yet processed for its current expiry.
func (s *ExpirationScanner) CheckExpired(ctx context.Context, botID int64) (*ExpiredScanResult, error) {
	now := s.now()
	windows, err := s.load(ctx, botID)
	if err != nil {
		return nil, err
	}

	var candidates []*domain.AccessWindow
	for _, w := range windows {
		if domain.Classify(w.ExpiresAt, now, 0) == domain.WindowExpired && w.NeedsExpiredNotice() {
			candidates = append(candidates, w)
		}
	}
	s.metrics.ScanCandidates(string(ModeCheckExpired), len(candidates))

	var removed, notified atomic.Int64
	s.forEach(ctx, candidates, func(ctx context.Context, w *domain.AccessWindow) {
		logger := s.logger.With("bot_id", botID, "contact_id", w.ContactID, "mode", ModeCheckExpired)

		contact, err := s.contacts.FindContact(ctx, w.ContactID)
		if err != nil {
			logger.Warn("contact lookup failed", "error", err)
			s.metrics.ScanSideEffect(string(ModeCheckExpired), "remove", "failed")
			return
		}

		if err := s.enforcer.Remove(ctx, botID, contact); err != nil {
			logger.Warn("member removal failed", "error", err)
			s.metrics.ScanSideEffect(string(ModeCheckExpired), "remove", "failed")
			return
		}
		removed.Add(1)
		s.metrics.ScanSideEffect(string(ModeCheckExpired), "remove", "ok")

		if err := s.notifier.NotifyExpired(ctx, botID, contact); err != nil {
			logger.Warn("expired notice failed", "error", err)
			s.metrics.ScanSideEffect(string(ModeCheckExpired), "notify", "failed")
		} else {
			notified.Add(1)
			s.metrics.ScanSideEffect(string(ModeCheckExpired), "notify", "ok")
		}

		s.mark(ctx, logger, w, now, s.windows.MarkExpiredNotified)
	})

	res := &ExpiredScanResult{
		ExpiredCount:  len(candidates),
		RemovedCount:  int(removed.Load()),
		NotifiedCount: int(notified.Load()),
	}
	res.FailedCount = res.ExpiredCount - res.RemovedCount

	s.logger.Info("expired scan finished",
		"bot_id", botID,
		"expired", res.ExpiredCount,
		"removed", res.RemovedCount,
		"notified", res.NotifiedCount,
	)
	return res, nil
}

// CheckExpiring sends one reminder per expiry to windows ending within thresholdDays.
// Zero means the default of seven days.
func (s *ExpirationScanner) CheckExpiring(ctx context.Context, botID int64, thresholdDays int) (*ExpiringScanResult, error) {
	if thresholdDays == 0 {
		thresholdDays = domain.DefaultThresholdDays
	}
	if thresholdDays < 1 || thresholdDays > MaxThresholdDays {
		return nil, application.NewInvalidInputError(fmt.Errorf("threshold_days must be between 1 and %d", MaxThresholdDays))
	}
	threshold := domain.ThresholdDays(thresholdDays)

	now := s.now()
	windows, err := s.load(ctx, botID)
	if err != nil {
		return nil, err
	}

	var candidates []*domain.AccessWindow
	for _, w := range windows {
		if domain.Classify(w.ExpiresAt, now, threshold) == domain.WindowExpiringSoon && w.NeedsExpiringNotice(threshold) {
			candidates = append(candidates, w)
		}
	}
	s.metrics.ScanCandidates(string(ModeCheckExpiring), len(candidates))

	var notified atomic.Int64
	s.forEach(ctx, candidates, func(ctx context.Context, w *domain.AccessWindow) {
		logger := s.logger.With("bot_id", botID, "contact_id", w.ContactID, "mode", ModeCheckExpiring)

		contact, err := s.contacts.FindContact(ctx, w.ContactID)
		if err != nil {
			logger.Warn("contact lookup failed", "error", err)
			s.metrics.ScanSideEffect(string(ModeCheckExpiring), "notify", "failed")
			return
		}

		if err := s.notifier.NotifyExpiring(ctx, botID, contact, w.DaysRemaining(now)); err != nil {
			logger.Warn("expiring notice failed", "error", err)
			s.metrics.ScanSideEffect(string(ModeCheckExpiring), "notify", "failed")
			return
		}
		notified.Add(1)
		s.metrics.ScanSideEffect(string(ModeCheckExpiring), "notify", "ok")

		s.mark(ctx, logger, w, now, s.windows.MarkExpiringNotified)
	})

	res := &ExpiringScanResult{
		ExpiringCount: len(candidates),
		NotifiedCount: int(notified.Load()),
	}
	res.FailedCount = res.ExpiringCount - res.NotifiedCount

	s.logger.Info("expiring scan finished",
		"bot_id", botID,
		"threshold_days", thresholdDays,
		"expiring", res.ExpiringCount,
		"notified", res.NotifiedCount,
	)
	return res, nil
}

func (s *ExpirationScanner) load(ctx context.Context, botID int64) ([]*domain.AccessWindow, error) {
	if _, err := s.bots.FindBot(ctx, botID); err != nil {
		if errors.Is(err, domain.ErrBotNotFound) {
			return nil, application.NewNotFoundError("bot", err)
		}
		return nil, application.NewInternalError(err)
	}

	windows, err := s.windows.ListTimeBoxed(ctx, botID)
	if err != nil {
		return nil, application.NewInternalError(fmt.Errorf("list access windows: %w", err))
	}
	return windows, nil
}

// forEach runs fn on a bounded pool. fn never fails the group.
func (s *ExpirationScanner) forEach(ctx context.Context, items []*domain.AccessWindow, fn func(context.Context, *domain.AccessWindow)) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, w := range items {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fn(ctx, w)
			return nil
		})
	}
	_ = g.Wait()
}

type markFunc func(ctx context.Context, w *domain.AccessWindow, at time.Time) (bool, error)

func (s *ExpirationScanner) mark(ctx context.Context, logger *slog.Logger, w *domain.AccessWindow, now time.Time, fn markFunc) {
	ok, err := fn(ctx, w, now)
	if err != nil {
		logger.Error("failed to record notification marker", "error", err)
		return
	}
	if !ok {
		logger.Info("window renewed during scan, marker skipped")
	}
}
