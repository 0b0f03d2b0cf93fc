package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/groupgate/internal/application/services"
	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/gateway"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/retry"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/telegram"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/groupgate/internal/interfaces/rest/openapi"
	"github.com/DanielPopoola/groupgate/internal/metrics"
	"github.com/DanielPopoola/groupgate/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger(os.Stdout, cfg.Primary.Env)
	slog.SetDefault(logger)

	logger.Info("starting groupgate",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	transactionRepo := postgres.NewTransactionRepository(db)
	windowRepo := postgres.NewAccessWindowRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	coordinator := postgres.NewTransactionCoordinator(db)

	stripeClient := gateway.NewStripeClient(cfg.Stripe, logger)
	gatewayClient := gateway.NewRetryGatewayClient(stripeClient, retry.FromConfig(cfg.Retry, cfg.Stripe.Timeout))

	botRegistry := telegram.NewBotRegistry(catalogRepo, telegram.NewClientFactory(cfg.Telegram))
	telegramPolicy := retry.FromConfig(cfg.Retry, cfg.Telegram.RequestTimeout)
	enforcer := telegram.NewEnforcer(botRegistry, telegramPolicy, logger)
	notifier := telegram.NewNotifier(botRegistry, telegramPolicy, logger)

	intentService := services.NewIntentService(transactionRepo, gatewayClient, recorder, logger)
	confirmService := services.NewConfirmationService(transactionRepo, windowRepo, coordinator, gatewayClient, recorder, logger)
	scanner := services.NewExpirationScanner(catalogRepo, windowRepo, catalogRepo, enforcer, notifier, cfg.Scan.Concurrency, recorder, logger)
	queryService := services.NewQueryService(transactionRepo, catalogRepo, catalogRepo, windowRepo)

	h := handlers.NewHandlers(intentService, confirmService, scanner, queryService, db, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	doc, err := openapi.Load(ctx)
	if err != nil {
		logger.Error("failed to load openapi document", "error", err)
		os.Exit(1)
	}
	validate, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		logger.Error("failed to build request validator", "error", err)
		os.Exit(1)
	}

	handler := validate(mux)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger, recorder)(handler)
	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	reconciler := worker.NewReconciler(
		transactionRepo,
		confirmService,
		cfg.Worker.ReconcileInterval,
		cfg.Worker.ReconcileAfter,
		cfg.Worker.ReconcileMaxBackoff,
		cfg.Worker.BatchSize,
		logger,
	)
	go reconciler.Start(workerCtx)

	if cfg.Worker.ScanEnabled {
		expirationWorker := worker.NewExpirationWorker(
			catalogRepo,
			scanner,
			cfg.Worker.ScanInterval,
			cfg.Scan.ThresholdDays,
			logger,
		)
		go expirationWorker.Start(workerCtx)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
