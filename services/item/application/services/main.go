package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/ghuser/stowage/pkg/app"
	"github.com/ghuser/stowage/pkg/cache"
	"github.com/ghuser/stowage/pkg/telemetry"
	"github.com/ghuser/stowage/services/item/infrastructure/messaging"
	"github.com/ghuser/stowage/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/stowage/services/item/infrastructure/persistence/postgres"
	"github.com/ghuser/stowage/services/item/infrastructure/seed"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
	// Activity is nil when no database is configured.
	Activity *ActivityService
}

// New wires all item application services with infrastructure from the
// Application container and seeds the catalog.
func New(ctx context.Context, a *app.Application) (*Services, error) {
	var treeCache TreeCache
	if a.Redis != nil {
		treeCache = cache.NewTreeCache(a.Redis, a.Config.TreeCacheTTL)
	}

	var publisher ChangePublisher
	if a.EventBus != nil {
		publisher = messaging.NewPublisher(a.EventBus)
	}

	metrics, err := NewMetrics(otel.Meter(telemetry.InstrumentationName))
	if err != nil {
		return nil, fmt.Errorf("item metrics: %w", err)
	}

	item := NewItemService(memory.NewItemRepository(), treeCache, publisher, metrics, a.Logger)

	items, err := seed.Load(a.Config.SeedFile)
	if err != nil {
		return nil, err
	}
	if err := item.Seed(ctx, items); err != nil {
		return nil, err
	}

	svcs := &Services{Item: item}
	if a.Db != nil {
		svcs.Activity = NewActivityService(postgres.NewActivityRepository(a.Db.Pool()))
	}
	return svcs, nil
}
