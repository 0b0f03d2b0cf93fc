package domain

import "time"

// WindowStatus is the bucket an access window falls into at a point in time.
type WindowStatus string

const (
	WindowActive       WindowStatus = "active"
	WindowExpired      WindowStatus = "expired"
	WindowExpiringSoon WindowStatus = "expiring_soon"
	WindowNoPayment    WindowStatus = "no_payment"
)

const DefaultThresholdDays = 7

func ParseWindowStatus(s string) (WindowStatus, bool) {
	switch WindowStatus(s) {
	case WindowActive, WindowExpired, WindowExpiringSoon, WindowNoPayment:
		return WindowStatus(s), true
	}
	return "", false
}

// Classify buckets an expiry against now. Lifetime windows are always active.
func Classify(expiresAt *time.Time, now time.Time, threshold time.Duration) WindowStatus {
	if expiresAt == nil {
		return WindowActive
	}
	if !expiresAt.After(now) {
		return WindowExpired
	}
	if !expiresAt.After(now.Add(threshold)) {
		return WindowExpiringSoon
	}
	return WindowActive
}

// ClassifyWindow is Classify for a possibly missing window.
func ClassifyWindow(w *AccessWindow, now time.Time, threshold time.Duration) WindowStatus {
	if w == nil {
		return WindowNoPayment
	}
	return Classify(w.ExpiresAt, now, threshold)
}

func ThresholdDays(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
