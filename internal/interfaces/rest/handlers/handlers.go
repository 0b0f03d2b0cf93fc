package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/openapi"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers serves the payment and membership endpoints.
type Handlers struct {
	intentService  *services.IntentService
	confirmService *services.ConfirmationService
	scanner        *services.ExpirationScanner
	queryService   *services.QueryService
	db             Pinger
	logger         *slog.Logger
}

func NewHandlers(
	intentService *services.IntentService,
	confirmService *services.ConfirmationService,
	scanner *services.ExpirationScanner,
	queryService *services.QueryService,
	db Pinger,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		intentService:  intentService,
		confirmService: confirmService,
		scanner:        scanner,
		queryService:   queryService,
		db:             db,
		logger:         logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /payment/transaction/{token}", h.GetTransaction)
	mux.HandleFunc("GET /payment/stripe-config", h.GetStripeConfig)
	mux.HandleFunc("POST /payment/card/create-intent", h.CreateIntent)
	mux.HandleFunc("POST /payment/card/confirm", h.ConfirmPayment)

	mux.HandleFunc("GET /payments/status", h.GetMembershipStatus)
	mux.HandleFunc("POST /payments/check-expired", h.CheckExpired)
	mux.HandleFunc("POST /payments/check-expiring", h.CheckExpiring)

	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /openapi.yaml", h.serveDocument)
}

func (h *Handlers) serveDocument(w http.ResponseWriter, _ *http.Request) {
	doc, err := openapi.Document()
	if err != nil {
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = io.WriteString(w, doc)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			rest.WriteError(w, application.NewTransientError(err), h.logger)
			return
		}
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
