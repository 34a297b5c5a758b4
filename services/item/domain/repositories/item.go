package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stowage/services/item/domain/models"
)

// Snapshot is a consistent, fully-applied view of the catalog.
// (Epoch, Version) identifies it: Epoch is fixed for the lifetime of a
// store, Version grows by one with every committed mutation.
type Snapshot struct {
	Epoch   uuid.UUID
	Version uint64
	Items   []models.Item
}

// Tx is the working copy a mutation runs against. Nothing written through
// a Tx is visible to readers until the enclosing Transact commits.
type Tx interface {
	// Items returns the working copy in insertion order.
	Items() []models.Item
	Get(id uuid.UUID) (models.Item, bool)
	Root() (models.Item, bool)
	Insert(item models.Item) error
	Replace(item models.Item) error
	Remove(id uuid.UUID) error
}

// ItemRepository is the persistence interface for the catalog.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Transact serializes fn against every other mutation. When fn returns
	// nil the working copy is committed and the resulting snapshot is
	// returned; any error discards the working copy.
	Transact(ctx context.Context, fn func(tx Tx) error) (*Snapshot, error)
}
