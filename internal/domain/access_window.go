package domain

import (
	"math"
	"time"
)

// AccessWindow is the single access record of a contact in a bot.
// A nil ExpiresAt means lifetime access.
type AccessWindow struct {
	ContactID     int64
	BotID         int64
	PaymentPlanID int64
	TransactionID string
	ExpiresAt     *time.Time

	LastNotifiedExpiringAt *time.Time
	LastNotifiedExpiredAt  *time.Time

	UpdatedAt time.Time
}

// NewAccessWindow returns an empty window that has never been paid for.
func NewAccessWindow(contactID, botID int64) *AccessWindow {
	return &AccessWindow{
		ContactID: contactID,
		BotID:     botID,
	}
}

// Extend computes the expiry after paying for one more cycle of calendar days.
// Renewal starts from the later of now and the current expiry, so remaining time is never lost.
func Extend(currentExpiry *time.Time, cycle PaymentCycle, now time.Time) *time.Time {
	if cycle.IsLifetime() {
		return nil
	}

	base := now
	if currentExpiry != nil && currentExpiry.After(now) {
		base = *currentExpiry
	}
	next := base.AddDate(0, 0, cycle.Days)
	return &next
}

// Renew applies a successful payment to the window and resets the notification markers.
func (w *AccessWindow) Renew(plan *PaymentPlan, transactionID string, now time.Time) {
	if w.ExpiresAt != nil || w.TransactionID == "" {
		w.ExpiresAt = Extend(w.ExpiresAt, plan.Cycle, now)
	}
	w.PaymentPlanID = plan.ID
	w.TransactionID = transactionID
	w.LastNotifiedExpiringAt = nil
	w.LastNotifiedExpiredAt = nil
	w.UpdatedAt = now
}

func (w *AccessWindow) IsLifetime() bool {
	return w.ExpiresAt == nil
}

// NeedsExpiredNotice reports whether the current expiry has not been processed yet.
func (w *AccessWindow) NeedsExpiredNotice() bool {
	if w.ExpiresAt == nil {
		return false
	}
	return w.LastNotifiedExpiredAt == nil || w.LastNotifiedExpiredAt.Before(*w.ExpiresAt)
}

// NeedsExpiringNotice reports whether no reminder was sent inside the current expiry's
// reminder window.
func (w *AccessWindow) NeedsExpiringNotice(threshold time.Duration) bool {
	if w.ExpiresAt == nil {
		return false
	}
	windowStart := w.ExpiresAt.Add(-threshold)
	return w.LastNotifiedExpiringAt == nil || w.LastNotifiedExpiringAt.Before(windowStart)
}

// DaysRemaining rounds up partial days so a window expiring later today reports 1.
func (w *AccessWindow) DaysRemaining(now time.Time) int {
	if w.ExpiresAt == nil {
		return 0
	}
	left := w.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}
