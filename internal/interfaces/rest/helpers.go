package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/domain"
)

const maxBodyBytes = 64 << 10

// DecodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return application.NewInvalidInputError(errors.New("request body is required"))
		}
		return application.NewInvalidInputError(fmt.Errorf("malformed request body: %w", err))
	}
	if dec.More() {
		return application.NewInvalidInputError(errors.New("request body must contain a single JSON object"))
	}
	return nil
}

type TransactionView struct {
	ID              string     `json:"id"`
	Token           string     `json:"token"`
	Status          string     `json:"status"`
	AmountCents     int64      `json:"amount_cents"`
	Currency        string     `json:"currency"`
	BotID           int64      `json:"bot_id"`
	ContactID       int64      `json:"contact_id"`
	GatewayIntentID string     `json:"payment_intent_id,omitempty"`
	FailureReason   string     `json:"failure_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
}

type PlanView struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
	CycleName  string `json:"cycle_name"`
	CycleDays  int    `json:"cycle_days"`
	Lifetime   bool   `json:"lifetime"`
}

type MemberView struct {
	ContactID      int64      `json:"contact_id"`
	TelegramUserID int64      `json:"telegram_user_id"`
	Username       string     `json:"username,omitempty"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Lifetime       bool       `json:"lifetime"`
	DaysRemaining  int        `json:"days_remaining"`
}

func ToTransactionView(tx *domain.Transaction) TransactionView {
	v := TransactionView{
		ID:          tx.ID,
		Token:       tx.Token,
		Status:      string(tx.Status),
		AmountCents: tx.AmountCents,
		Currency:    tx.Currency,
		BotID:       tx.BotID,
		ContactID:   tx.ContactID,
		CreatedAt:   tx.CreatedAt,
		ConfirmedAt: tx.ConfirmedAt,
	}
	if tx.GatewayIntentID != nil {
		v.GatewayIntentID = *tx.GatewayIntentID
	}
	if tx.FailureReason != nil {
		v.FailureReason = *tx.FailureReason
	}
	return v
}

func ToPlanView(p *domain.PaymentPlan) PlanView {
	return PlanView{
		ID:         p.ID,
		Title:      p.Title,
		PriceCents: p.PriceCents,
		Currency:   p.Currency,
		CycleName:  p.Cycle.Name,
		CycleDays:  p.Cycle.Days,
		Lifetime:   p.Cycle.IsLifetime(),
	}
}

func ToMemberView(e services.StatusEntry) MemberView {
	v := MemberView{
		ContactID:      e.Contact.ID,
		TelegramUserID: e.Contact.TelegramUserID,
		Username:       e.Contact.Username,
		Name:           e.Contact.DisplayName(),
		Status:         string(e.Status),
		DaysRemaining:  e.DaysRemaining,
	}
	if e.Window != nil {
		v.ExpiresAt = e.Window.ExpiresAt
		v.Lifetime = e.Window.IsLifetime()
	}
	return v
}
