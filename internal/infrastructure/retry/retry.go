// Package retry runs bounded attempts with exponential backoff and jitter.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/DanielPopoola/groupgate/internal/config"
)

// Policy bounds a retried call. AttemptTimeout, when set, caps every single attempt.
type Policy struct {
	BaseDelay      time.Duration
	MaxRetries     int
	AttemptTimeout time.Duration
	MaxJitter      time.Duration
}

func FromConfig(cfg config.RetryConfig, attemptTimeout time.Duration) Policy {
	return Policy{
		BaseDelay:      cfg.BaseDelay,
		MaxRetries:     cfg.MaxRetries,
		AttemptTimeout: attemptTimeout,
		MaxJitter:      cfg.BaseDelay,
	}
}

// Do calls op until it succeeds, returns an error retryable rejects, or attempts run out.
func Do[T any](ctx context.Context, p Policy, retryable func(error) bool, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	attempts := max(p.MaxRetries, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		resp, err := callOnce(ctx, p.AttemptTimeout, op)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, err
		}

		if attempt < attempts-1 {
			if err := sleep(ctx, p.backoff(attempt)); err != nil {
				return zero, err
			}
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func callOnce[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return op(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return op(ctx)
}

// Backoff calculation with exponential delay and jitter
func (p Policy) backoff(attempt int) time.Duration {
	base := p.BaseDelay * time.Duration(1<<attempt)
	if p.MaxJitter <= 0 {
		return base
	}
	return base + rand.N(p.MaxJitter)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
