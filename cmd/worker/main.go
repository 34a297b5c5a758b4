package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	itemMigrations "github.com/ghuser/stowage/migrations/item"
	"github.com/ghuser/stowage/pkg/app"
	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/database"
	"github.com/ghuser/stowage/pkg/events"
	"github.com/ghuser/stowage/pkg/logger"
	"github.com/ghuser/stowage/pkg/telemetry"
	itemServices "github.com/ghuser/stowage/services/item/application/services"
	itemEvents "github.com/ghuser/stowage/services/item/domain/events"
	"github.com/ghuser/stowage/services/item/infrastructure/messaging"
	"github.com/ghuser/stowage/services/item/infrastructure/persistence/postgres"
)

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

	log := logger.New(cfg).With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	if err := itemMigrations.Migrate(ctx, cfg.DefinitionDatabaseURL); err != nil {
		log.Error("failed to apply item migrations", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	db, err := database.New(ctx, cfg.DefinitionDatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log, events.WithRetry(cfg.EventRetries, cfg.EventRetryDelay))
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	appConfig := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	activity := itemServices.NewActivityService(postgres.NewActivityRepository(a.Db.Pool()))

	errCh, err := a.EventBus.SubscribeAll(ctx, itemEvents.Topics, handleItemChanged(a, activity))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "error", err)
			telemetry.CaptureError(ctx, err)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", itemEvents.Topics)
	return nil
}

// handleItemChanged records every catalog change in the activity log.
// Redelivered events hit ON CONFLICT (event_id) DO NOTHING.
func handleItemChanged(a *app.Application, activity *itemServices.ActivityService) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := messaging.DecodeItemChanged(msg)
		if err != nil {
			// Redelivery cannot fix a payload; ack it and report.
			a.Logger.ErrorContext(ctx, "dropping undecodable event", "message_id", msg.UUID, "error", err)
			telemetry.CaptureError(ctx, err)
			return nil
		}
		if err := activity.Record(ctx, evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "activity recorded",
			"event_id", evt.EventID, "action", evt.Action, "item_id", evt.ItemID)
		return nil
	}
}
