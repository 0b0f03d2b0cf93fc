package tests

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/application/services/testhelpers"
	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/domain"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/gateway"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/telegram"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/openapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegram answers Bot API calls and counts them by method.
type fakeTelegram struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "sendMessage":
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`)
	default:
		_, _ = io.WriteString(w, `{"ok":true,"result":true}`)
	}
}

func (f *fakeTelegram) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func fakeStripe(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/payment_intents":
			_, _ = io.WriteString(w, `{"id":"pi_int","object":"payment_intent","client_secret":"pi_int_secret","status":"requires_payment_method","amount":1500,"currency":"usd"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payment_intents/pi_int":
			_, _ = io.WriteString(w, `{"id":"pi_int","object":"payment_intent","status":"succeeded","amount":1500,"currency":"usd"}`)
		default:
			t.Errorf("unexpected stripe call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

type stack struct {
	handler  http.Handler
	db       *postgres.DB
	catalog  *postgres.CatalogRepository
	txRepo   *postgres.TransactionRepository
	telegram *fakeTelegram
}

func setupIntegration(t *testing.T) *stack {
	t.Helper()
	tdb := testhelpers.SetupTestDatabase(t)
	t.Cleanup(func() { tdb.Cleanup(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	policy := retry.Policy{BaseDelay: time.Millisecond, MaxRetries: 1, AttemptTimeout: 2 * time.Second}

	stripeSrv := httptest.NewServer(fakeStripe(t))
	t.Cleanup(stripeSrv.Close)
	tg := &fakeTelegram{calls: map[string]int{}}
	tgSrv := httptest.NewServer(tg)
	t.Cleanup(tgSrv.Close)

	txRepo := postgres.NewTransactionRepository(tdb.DB)
	windowRepo := postgres.NewAccessWindowRepository(tdb.DB)
	catalog := postgres.NewCatalogRepository(tdb.DB)
	coordinator := postgres.NewTransactionCoordinator(tdb.DB)

	stripeClient := gateway.NewStripeClient(config.StripeConfig{
		SecretKey:      "sk_test_int",
		PublishableKey: "pk_test_int",
		Timeout:        2 * time.Second,
		APIBaseURL:     stripeSrv.URL,
	}, logger)
	gw := gateway.NewRetryGatewayClient(stripeClient, policy)

	registry := telegram.NewBotRegistry(catalog, telegram.NewClientFactory(config.TelegramConfig{
		RequestTimeout: 2 * time.Second,
		APIBaseURL:     tgSrv.URL,
	}))
	metrics := application.NopMetrics{}

	h := handlers.NewHandlers(
		services.NewIntentService(txRepo, gw, metrics, logger),
		services.NewConfirmationService(txRepo, windowRepo, coordinator, gw, metrics, logger),
		services.NewExpirationScanner(catalog, windowRepo, catalog,
			telegram.NewEnforcer(registry, policy, logger),
			telegram.NewNotifier(registry, policy, logger),
			4, metrics, logger),
		services.NewQueryService(txRepo, catalog, catalog, windowRepo),
		tdb.DB,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	doc, err := openapi.Load(context.Background())
	require.NoError(t, err)
	validate, err := middleware.OpenAPIValidator(doc, logger)
	require.NoError(t, err)

	return &stack{
		handler:  middleware.Recovery(logger)(validate(mux)),
		db:       tdb.DB,
		catalog:  catalog,
		txRepo:   txRepo,
		telegram: tg,
	}
}

func (s *stack) call(t *testing.T, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestIntegration_PaymentToRemoval(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := setupIntegration(t)
	ctx := context.Background()

	bot := &domain.Bot{Name: "vip", Token: "123:abc", GroupChatID: -1001}
	require.NoError(t, s.catalog.CreateBot(ctx, bot))
	plan := &domain.PaymentPlan{Title: "Monthly", PriceCents: 1500, Currency: "usd",
		Cycle: domain.PaymentCycle{Name: "monthly", Days: 30, IsActive: true}}
	require.NoError(t, s.catalog.CreatePlan(ctx, plan))
	contact := &domain.Contact{BotID: bot.ID, TelegramUserID: 4242, FirstName: "Dana"}
	require.NoError(t, s.catalog.CreateContact(ctx, contact))

	money, err := domain.NewMoney(plan.PriceCents, plan.Currency)
	require.NoError(t, err)
	tx, err := domain.NewTransaction(uuid.NewString(), uuid.NewString(), plan.ID, contact.ID, bot.ID, money)
	require.NoError(t, err)
	require.NoError(t, s.txRepo.Create(ctx, tx))

	// 1. Summary and checkout
	code, body := s.call(t, http.MethodGet, "/payment/transaction/"+tx.Token, "")
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.call(t, http.MethodPost, "/payment/card/create-intent", `{"token":"`+tx.Token+`"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "pi_int", body["payment_intent_id"])
	assert.Equal(t, "pk_test_int", body["public_key"])

	// 2. Confirm twice, extend once
	confirm := `{"token":"` + tx.Token + `","payment_intent_id":"pi_int"}`
	code, body = s.call(t, http.MethodPost, "/payment/card/confirm", confirm)
	require.Equal(t, http.StatusOK, code, body)
	firstExpiry := body["expires_at"]

	code, body = s.call(t, http.MethodPost, "/payment/card/confirm", confirm)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, firstExpiry, body["expires_at"])

	code, body = s.call(t, http.MethodGet, "/payments/status?bot_id="+strconv.FormatInt(bot.ID, 10), "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["summary"].(map[string]any)["active"])

	// 3. Expiring reminder is sent once
	_, err = s.db.Pool.Exec(ctx, `UPDATE access_windows SET expires_at = now() + interval '3 days'`)
	require.NoError(t, err)
	for range 2 {
		code, body = s.call(t, http.MethodPost, "/payments/check-expiring", `{"bot_id":`+strconv.FormatInt(bot.ID, 10)+`}`)
		require.Equal(t, http.StatusOK, code, body)
	}
	assert.Equal(t, 1, s.telegram.count("sendMessage"))

	// 4. Expired member is removed once
	_, err = s.db.Pool.Exec(ctx, `UPDATE access_windows SET expires_at = now() - interval '1 hour'`)
	require.NoError(t, err)

	code, body = s.call(t, http.MethodPost, "/payments/check-expired", `{"bot_id":`+strconv.FormatInt(bot.ID, 10)+`}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["expired_count"])
	assert.Equal(t, float64(1), body["removed_count"])
	assert.Equal(t, float64(1), body["notified_count"])

	code, body = s.call(t, http.MethodPost, "/payments/check-expired", `{"bot_id":`+strconv.FormatInt(bot.ID, 10)+`}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(0), body["expired_count"])

	assert.Equal(t, 1, s.telegram.count("banChatMember"))
	assert.Equal(t, 1, s.telegram.count("unbanChatMember"))
	assert.Equal(t, 2, s.telegram.count("sendMessage"))
}
