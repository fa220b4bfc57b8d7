package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	attributionGA4 "attribution-relay/internal/attribution/adapters/ga4"
	attributionHttp "attribution-relay/internal/attribution/adapters/http/fiber"
	attributionRepoPg "attribution-relay/internal/attribution/adapters/postgres"
	attributionWebhook "attribution-relay/internal/attribution/adapters/webhook"
	attributionPorts "attribution-relay/internal/attribution/core/ports"
	attributionUsecase "attribution-relay/internal/attribution/core/usecase"

	reportsHttp "attribution-relay/internal/reports/adapters/http/fiber"
	reportsRepoPg "attribution-relay/internal/reports/adapters/postgres"
	reportsUsecase "attribution-relay/internal/reports/core/usecase"

	"attribution-relay/internal/platform/config"
	"attribution-relay/internal/platform/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "attribution-relay/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Relay.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	relayMetrics := metrics.New(registry)

	// Sinks
	var analytics attributionPorts.AnalyticsPort
	ga := attributionGA4.NewClient(
		cfg.Relay.Analytics.Endpoint,
		cfg.Relay.Analytics.MeasurementID,
		cfg.Relay.Analytics.APISecret,
		cfg.Relay.Analytics.Timeout,
	)
	if ga.Configured() {
		analytics = ga
	} else {
		logger.Info("GA4 measurement id or api secret not set, analytics events will be skipped")
	}

	hook := attributionWebhook.NewClient(cfg.Relay.Webhook.URL, cfg.Relay.Webhook.Timeout)
	if !hook.Configured() {
		logger.Info("webhook not configured, conversions will only be logged")
	}

	relayOpts := []attributionUsecase.Option{
		attributionUsecase.WithLogger(logger),
		attributionUsecase.WithMetrics(relayMetrics),
		attributionUsecase.WithCookieNames(attributionUsecase.CookieNames{
			VisitorID:     cfg.Relay.Cookies.VisitorID,
			FirstTouch:    cfg.Relay.Cookies.FirstTouch,
			SignupTracked: cfg.Relay.Cookies.SignupTracked,
			GAClient:      cfg.Relay.Cookies.GAClient,
		}),
		attributionUsecase.WithSignupMarkers(cfg.Relay.SignupDetection.Paths),
	}

	// HTTP (Fiber) app
	app := fiber.New()

	// Journal + reports, only with a database
	var db *sql.DB
	if cfg.Env.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.Env.PostgresDSN)
		if err != nil {
			logger.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			logger.Error("failed to ping postgres", "error", err)
			os.Exit(1)
		}

		journal := attributionRepoPg.NewJournalRepository(attributionRepoPg.NewSQLDB(db))
		if err := journal.EnsureSchema(context.Background()); err != nil {
			logger.Error("failed to prepare journal", "error", err)
			os.Exit(1)
		}
		relayOpts = append(relayOpts, attributionUsecase.WithJournal(journal))

		reportRepository := reportsRepoPg.NewReportRepository(reportsRepoPg.NewSQLDB(db))
		reportsHandler := reportsHttp.NewReportHandler(reportsUsecase.NewGetReportUseCase(reportRepository))
		app.Get("/reports", reportsHandler.GetReport)
	} else {
		logger.Info("POSTGRES_DSN not set, journal and reports disabled")
	}

	relayUC := attributionUsecase.NewRelayUseCase(analytics, hook, relayOpts...)

	// attribution endpoints
	attributionHandler := attributionHttp.NewAttributionHandler(relayUC, cfg.Relay.Cookies.SignupTracked)
	app.Get("/attribution", attributionHandler.GetAttribution)
	app.Post("/pageview", attributionHandler.TrackPageview)
	app.Post("/signup", attributionHandler.TrackSignup)
	app.Get("/debug", attributionHandler.Debug)

	// Prometheus
	app.Get("/internal/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Env.ListenAddr); err != nil {
			logger.Error("fiber stopped", "error", err)
		}
	}()

	logger.Info("attribution relay started", "addr", cfg.Env.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("fiber shutdown error", "error", err)
	}

	// let in-flight webhook posts finish
	relayUC.Wait()

	logger.Info("server exiting")
}
