package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/stowage/docs/swagger"
	"github.com/ghuser/stowage/pkg/app"
	"github.com/ghuser/stowage/pkg/auth"
	"github.com/ghuser/stowage/pkg/cache"
	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/database"
	"github.com/ghuser/stowage/pkg/events"
	"github.com/ghuser/stowage/pkg/httpx"
	"github.com/ghuser/stowage/pkg/logger"
	"github.com/ghuser/stowage/pkg/telemetry"
	itemApi "github.com/ghuser/stowage/services/item/application/api"
	itemServices "github.com/ghuser/stowage/services/item/application/services"
)

// @title					Stowage API
// @version				1.0
// @description			Hierarchical catalog of physical things, located by container name.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	production := cfg.Environment == config.EnvProduction

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional - log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{Config: cfg, Logger: log}
	checks := httpx.HealthChecks{}

	// The catalog lives in memory; Postgres, Redis and the event bus back
	// optional features. Outside production a missing backend is a warning.
	db, err := database.New(ctx, cfg.DefinitionDatabaseURL, log)
	if err != nil {
		optional(log, production, "database", err)
	} else {
		defer db.Close()
		appConfig.Db = db
		checks.Database = db
		log.Info("database pool connected")
	}

	if appConfig.Db != nil {
		eventBus, err := events.NewEventBus(cfg, log, events.WithForwarder())
		if err == nil {
			err = eventBus.StartForwarder(ctx)
			if err != nil {
				_ = eventBus.Close()
			}
		}
		if err != nil {
			optional(log, production, "event bus", err)
		} else {
			defer eventBus.Close() //nolint:errcheck
			appConfig.EventBus = eventBus
			checks.EventBus = eventBus
			log.Info("event bus started", "mode", "forwarder")
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		optional(log, production, "redis", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		checks.Redis = redisClient
		log.Info("redis connected")

		appConfig.SessionStore = auth.NewSessionStore(redisClient.Client(), auth.StoreOptions{
			AuthKey:       []byte(cfg.SessionAuthKey),
			EncryptionKey: []byte(cfg.SessionEncryptionKey),
			Secure:        production,
		})
		log.Info("session store initialized", "backend", "redis")
	}

	if cfg.RequireEditorSession && appConfig.SessionStore == nil {
		log.Error("REQUIRE_EDITOR_SESSION needs a session store; configure REDIS_URL")
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	itemSvcs, err := itemServices.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to initialize item services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.HTTPRateLimit,
			BodyLimit:          cfg.HTTPBodyLimit,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get(httpx.DocsPathPrefix+"*", httpSwagger.Handler(httpSwagger.URL(httpx.DocsPathPrefix+"doc.json")))
	r.Route("/api", func(r chi.Router) {
		r.Use(errhttp.Verbose(cfg.Environment != config.EnvProduction))
		if appConfig.SessionStore != nil {
			sessionHandler := auth.NewSessionHandler(appConfig.SessionStore, log)
			r.Post("/session", sessionHandler.Start)
			r.Delete("/session", sessionHandler.End)
		}
		itemApi.ItemRoutes(r, appConfig, itemSvcs)
	})

	srv := httpx.NewServer(cfg.Addr(), r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// optional logs a backend that failed to start. In production it is fatal.
func optional(log logger.Logger, production bool, backend string, err error) {
	if production {
		log.Error("failed to connect "+backend, "error", err)
		os.Exit(1)
	}
	log.Warn("continuing without "+backend, "error", err)
}
