package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monthly  = domain.PaymentCycle{ID: 1, Name: "monthly", Days: 30, IsActive: true}
	lifetime = domain.PaymentCycle{ID: 2, Name: "lifetime", Days: 0, IsActive: true}
	day      = 24 * time.Hour
)

func TestExtend(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("lifetime cycle always yields nil", func(t *testing.T) {
		future := now.Add(90 * day)
		past := now.Add(-90 * day)

		assert.Nil(t, domain.Extend(nil, lifetime, now))
		assert.Nil(t, domain.Extend(&future, lifetime, now))
		assert.Nil(t, domain.Extend(&past, lifetime, now))
	})

	t.Run("renewal keeps remaining time", func(t *testing.T) {
		current := now.Add(5 * day)

		got := domain.Extend(&current, monthly, now)

		require.NotNil(t, got)
		assert.Equal(t, current.Add(30*day), *got)
	})

	t.Run("no previous expiry starts from now", func(t *testing.T) {
		got := domain.Extend(nil, monthly, now)

		require.NotNil(t, got)
		assert.Equal(t, now.Add(30*day), *got)
	})

	t.Run("lapsed expiry starts from now", func(t *testing.T) {
		lapsed := now.Add(-10 * day)

		got := domain.Extend(&lapsed, monthly, now)

		require.NotNil(t, got)
		assert.Equal(t, now.Add(30*day), *got)
	})

	t.Run("very long cycle still moves forward", func(t *testing.T) {
		centuries := domain.PaymentCycle{ID: 3, Name: "legacy", Days: 200000, IsActive: true}

		got := domain.Extend(nil, centuries, now)

		require.NotNil(t, got)
		assert.True(t, got.After(now))
		assert.Equal(t, now.AddDate(0, 0, 200000), *got)
	})

	t.Run("counts calendar days across a DST change", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata not available")
		}
		weekly := domain.PaymentCycle{ID: 4, Name: "weekly", Days: 7, IsActive: true}
		start := time.Date(2026, 3, 5, 9, 0, 0, 0, ny)

		got := domain.Extend(nil, weekly, start)

		require.NotNil(t, got)
		assert.True(t, time.Date(2026, 3, 12, 9, 0, 0, 0, ny).Equal(*got), "got %s", got)
		assert.Equal(t, 7*day-time.Hour, got.Sub(start))
	})

	t.Run("deterministic", func(t *testing.T) {
		current := now.Add(day)

		assert.Equal(t, domain.Extend(&current, monthly, now), domain.Extend(&current, monthly, now))
	})
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	threshold := domain.ThresholdDays(domain.DefaultThresholdDays)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      domain.WindowStatus
	}{
		{"lifetime", nil, domain.WindowActive},
		{"exactly now", at(0), domain.WindowExpired},
		{"in the past", at(-time.Minute), domain.WindowExpired},
		{"just after now", at(time.Second), domain.WindowExpiringSoon},
		{"exactly seven days", at(7 * day), domain.WindowExpiringSoon},
		{"eight days", at(8 * day), domain.WindowActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Classify(tt.expiresAt, now, threshold))
		})
	}

	t.Run("missing window is no_payment", func(t *testing.T) {
		assert.Equal(t, domain.WindowNoPayment, domain.ClassifyWindow(nil, now, threshold))
	})
}

func TestParseWindowStatus(t *testing.T) {
	for _, s := range []string{"active", "expired", "expiring_soon", "no_payment"} {
		got, ok := domain.ParseWindowStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, domain.WindowStatus(s), got)
	}

	_, ok := domain.ParseWindowStatus("Active")
	assert.False(t, ok)
	_, ok = domain.ParseWindowStatus("")
	assert.False(t, ok)
}

func TestAccessWindow_Markers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	plan := &domain.PaymentPlan{ID: 7, Cycle: monthly}

	t.Run("unmarked expired window needs notice", func(t *testing.T) {
		exp := now.Add(-day)
		w := &domain.AccessWindow{ExpiresAt: &exp}

		assert.True(t, w.NeedsExpiredNotice())

		w.LastNotifiedExpiredAt = &now
		assert.False(t, w.NeedsExpiredNotice())
	})

	t.Run("expiring marker inside the reminder window suppresses repeats", func(t *testing.T) {
		exp := now.Add(3 * day)
		w := &domain.AccessWindow{ExpiresAt: &exp}
		threshold := domain.ThresholdDays(7)

		assert.True(t, w.NeedsExpiringNotice(threshold))

		marked := now
		w.LastNotifiedExpiringAt = &marked
		assert.False(t, w.NeedsExpiringNotice(threshold))
	})

	t.Run("renewal resets markers and extends once", func(t *testing.T) {
		exp := now.Add(2 * day)
		w := &domain.AccessWindow{ContactID: 1, BotID: 2, TransactionID: "old", ExpiresAt: &exp}
		w.LastNotifiedExpiringAt = &now

		w.Renew(plan, "new", now)

		require.NotNil(t, w.ExpiresAt)
		assert.Equal(t, exp.Add(30*day), *w.ExpiresAt)
		assert.Nil(t, w.LastNotifiedExpiringAt)
		assert.Nil(t, w.LastNotifiedExpiredAt)
		assert.Equal(t, "new", w.TransactionID)
		assert.Equal(t, int64(7), w.PaymentPlanID)
	})

	t.Run("first payment on lifetime plan stays lifetime", func(t *testing.T) {
		w := domain.NewAccessWindow(1, 2)

		w.Renew(&domain.PaymentPlan{ID: 8, Cycle: lifetime}, "tx", now)

		assert.True(t, w.IsLifetime())
	})

	t.Run("days remaining rounds up", func(t *testing.T) {
		exp := now.Add(2*day + time.Hour)
		w := &domain.AccessWindow{ExpiresAt: &exp}

		assert.Equal(t, 3, w.DaysRemaining(now))
	})
}
