package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest"
	"github.com/oapi-codegen/runtime"
)

type transactionResponse struct {
	Success     bool                 `json:"success"`
	Transaction rest.TransactionView `json:"transaction"`
	Plan        rest.PlanView        `json:"plan"`
}

type stripeConfigResponse struct {
	Success   bool   `json:"success"`
	PublicKey string `json:"public_key"`
}

type createIntentRequest struct {
	Token string `json:"token"`
}

type createIntentResponse struct {
	Success         bool   `json:"success"`
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	PublicKey       string `json:"public_key"`
}

type confirmRequest struct {
	Token           string `json:"token"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type confirmResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Transaction rest.TransactionView `json:"transaction"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
	Lifetime    bool                 `json:"lifetime"`
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	var token string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "token", runtime.ParamLocationPath, r.PathValue("token"), &token); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(fmt.Errorf("invalid token: %w", err)), h.logger)
		return
	}

	summary, err := h.queryService.Transaction(r.Context(), token)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, transactionResponse{
		Success:     true,
		Transaction: rest.ToTransactionView(summary.Transaction),
		Plan:        rest.ToPlanView(summary.Plan),
	}, h.logger)
}

func (h *Handlers) GetStripeConfig(w http.ResponseWriter, r *http.Request) {
	var token string
	if err := runtime.BindQueryParameter("form", true, true, "token", r.URL.Query(), &token); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
		return
	}

	cfg, err := h.intentService.PublicConfig(r.Context(), token)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, stripeConfigResponse{Success: true, PublicKey: cfg.PublicKey}, h.logger)
}

func (h *Handlers) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	res, err := h.intentService.CreateIntent(r.Context(), services.CreateIntentCommand{Token: req.Token})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, createIntentResponse{
		Success:         true,
		ClientSecret:    res.ClientSecret,
		PaymentIntentID: res.PaymentIntentID,
		PublicKey:       res.PublicKey,
	}, h.logger)
}

// ConfirmPayment answers 202 when the gateway captured the payment but activation is still pending.
func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := rest.DecodeJSON(w, r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	res, err := h.confirmService.Confirm(r.Context(), services.ConfirmCommand{
		Token:           req.Token,
		GatewayIntentID: req.PaymentIntentID,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	resp := confirmResponse{
		Success:     true,
		Message:     "Payment confirmed. Your access is active.",
		Transaction: rest.ToTransactionView(res.Transaction),
	}
	if res.AlreadyConfirmed {
		resp.Message = "Payment was already confirmed."
	}
	if res.Window != nil {
		resp.ExpiresAt = res.Window.ExpiresAt
		resp.Lifetime = res.Window.IsLifetime()
	}

	rest.WriteJSON(w, http.StatusOK, resp, h.logger)
}
