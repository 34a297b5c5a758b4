// Package memory holds the catalog in process memory. State lives for the
// lifetime of the process; the activity log is the only durable record.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/models"
	"github.com/ghuser/stowage/services/item/domain/repositories"
)

// ItemRepository implements repositories.ItemRepository with an ordered
// slice guarded by a RWMutex. Mutations run against a cloned working copy
// and replace the committed state only when they succeed.
type ItemRepository struct {
	mu      sync.RWMutex
	epoch   uuid.UUID
	version uint64
	state   state
}

type state struct {
	items []models.Item
	index map[uuid.UUID]int
}

func (s state) clone() state {
	out := state{
		items: make([]models.Item, len(s.items)),
		index: make(map[uuid.UUID]int, len(s.index)),
	}
	copy(out.items, s.items)
	for k, v := range s.index {
		out.index[k] = v
	}
	return out
}

func (s state) snapshot() []models.Item {
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// NewItemRepository returns an empty store with a fresh epoch.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		epoch: uuid.New(),
		state: state{index: map[uuid.UUID]int{}},
	}
}

// Snapshot returns a copy of the committed state.
func (r *ItemRepository) Snapshot(_ context.Context) (*repositories.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(), nil
}

func (r *ItemRepository) snapshotLocked() *repositories.Snapshot {
	return &repositories.Snapshot{
		Epoch:   r.epoch,
		Version: r.version,
		Items:   r.state.snapshot(),
	}
}

// Transact runs fn against a working copy under the write lock. The
// version only moves when fn wrote something.
func (r *ItemRepository) Transact(ctx context.Context, fn func(tx repositories.Tx) error) (*repositories.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &transaction{state: r.state.clone()}
	if err := fn(tx); err != nil {
		return nil, err
	}

	if tx.dirty {
		r.state = tx.state
		r.version++
	}
	return r.snapshotLocked(), nil
}

type transaction struct {
	state state
	dirty bool
}

func (tx *transaction) Items() []models.Item {
	return tx.state.snapshot()
}

func (tx *transaction) Get(id uuid.UUID) (models.Item, bool) {
	i, ok := tx.state.index[id]
	if !ok {
		return models.Item{}, false
	}
	return tx.state.items[i], true
}

func (tx *transaction) Root() (models.Item, bool) {
	for _, it := range tx.state.items {
		if it.IsRoot {
			return it, true
		}
	}
	return models.Item{}, false
}

func (tx *transaction) Insert(item models.Item) error {
	if _, ok := tx.state.index[item.ID]; ok {
		return fmt.Errorf("%w: %s", itemdomain.ErrItemAlreadyExists, item.ID)
	}
	if item.IsRoot {
		if root, ok := tx.Root(); ok {
			return &itemdomain.ProtectedItemError{ItemID: root.ID, Reason: "catalog already has a root"}
		}
	}
	tx.state.index[item.ID] = len(tx.state.items)
	tx.state.items = append(tx.state.items, item)
	tx.dirty = true
	return nil
}

func (tx *transaction) Replace(item models.Item) error {
	i, ok := tx.state.index[item.ID]
	if !ok {
		return itemdomain.NotFound(item.ID)
	}
	if tx.state.items[i].IsRoot != item.IsRoot {
		return &itemdomain.ProtectedItemError{ItemID: item.ID, Reason: "root flag cannot change"}
	}
	tx.state.items[i] = item
	tx.dirty = true
	return nil
}

func (tx *transaction) Remove(id uuid.UUID) error {
	i, ok := tx.state.index[id]
	if !ok {
		return itemdomain.NotFound(id)
	}
	if tx.state.items[i].IsRoot {
		return &itemdomain.ProtectedItemError{ItemID: id, Reason: "root item cannot be deleted"}
	}
	tx.state.items = append(tx.state.items[:i], tx.state.items[i+1:]...)
	delete(tx.state.index, id)
	for j := i; j < len(tx.state.items); j++ {
		tx.state.index[tx.state.items[j].ID] = j
	}
	tx.dirty = true
	return nil
}
