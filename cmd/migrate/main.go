package main

import (
	"context"
	"log/slog"
	"os"

	itemMigrations "github.com/ghuser/stowage/migrations/item"
	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "migrate")

	if cfg.DefinitionDatabaseURL == "" {
		log.Error("DEFINITION_DATABASE_URL is required")
		os.Exit(1)
	}

	if err := itemMigrations.Migrate(context.Background(), cfg.DefinitionDatabaseURL); err != nil {
		log.Error("migration failed", "context", "item", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "context", "item")
}
