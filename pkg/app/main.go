package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stowage/pkg/cache"
	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/database"
	"github.com/ghuser/stowage/pkg/events"
	"github.com/ghuser/stowage/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each bounded context's route registration during server initialization.
//
// Only Config and Logger are required. Db, EventBus, Redis and SessionStore
// are nil when the backing service is not configured; the catalog keeps
// serving and the dependent feature (activity log, change events, tree
// cache, editor sessions) is switched off.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "relocated item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to publish", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store
}
