package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/models"
	"github.com/ghuser/stowage/services/item/domain/repositories"
)

func seeded(t *testing.T) (*ItemRepository, models.Item, models.Item) {
	t.Helper()
	repo := NewItemRepository()
	root := *models.NewRootItem("All", "", "")
	cabinet := *models.NewItem("Cabinet", "", "All", "")
	if _, err := repo.Transact(context.Background(), func(tx repositories.Tx) error {
		if err := tx.Insert(root); err != nil {
			return err
		}
		return tx.Insert(cabinet)
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo, root, cabinet
}

func TestItemRepository_Snapshot(t *testing.T) {
	repo := NewItemRepository()
	snap, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Version != 0 || len(snap.Items) != 0 || snap.Epoch == uuid.Nil {
		t.Fatalf("unexpected empty snapshot %+v", snap)
	}

	repo, root, cabinet := seeded(t)
	snap, _ = repo.Snapshot(context.Background())
	if snap.Version != 1 {
		t.Fatalf("expected version 1 after one commit, got %d", snap.Version)
	}
	if len(snap.Items) != 2 || snap.Items[0].ID != root.ID || snap.Items[1].ID != cabinet.ID {
		t.Fatalf("snapshot must preserve insertion order: %+v", snap.Items)
	}

	// Mutating a returned snapshot must not leak into the store.
	snap.Items[1].Name = "Hacked"
	again, _ := repo.Snapshot(context.Background())
	if again.Items[1].Name != "Cabinet" {
		t.Fatal("snapshot shares memory with the store")
	}
}

func TestItemRepository_TransactRollback(t *testing.T) {
	repo, _, cabinet := seeded(t)
	boom := errors.New("boom")

	_, err := repo.Transact(context.Background(), func(tx repositories.Tx) error {
		if err := tx.Remove(cabinet.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	snap, _ := repo.Snapshot(context.Background())
	if len(snap.Items) != 2 || snap.Version != 1 {
		t.Fatalf("failed transaction must leave state unchanged: %+v", snap)
	}
}

func TestItemRepository_ReadOnlyTransactKeepsVersion(t *testing.T) {
	repo, _, _ := seeded(t)
	snap, err := repo.Transact(context.Background(), func(tx repositories.Tx) error {
		_ = tx.Items()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Version != 1 {
		t.Fatalf("expected version 1, got %d", snap.Version)
	}
}

func TestItemRepository_TxRules(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		fn     func(root, cabinet models.Item) func(tx repositories.Tx) error
		target error
	}{
		{
			name: "duplicate id",
			fn: func(_, cabinet models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error { return tx.Insert(cabinet) }
			},
			target: itemdomain.ErrItemAlreadyExists,
		},
		{
			name: "second root",
			fn: func(_, _ models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error { return tx.Insert(*models.NewRootItem("Other", "", "")) }
			},
			target: itemdomain.ErrProtectedItem,
		},
		{
			name: "remove root",
			fn: func(root, _ models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error { return tx.Remove(root.ID) }
			},
			target: itemdomain.ErrProtectedItem,
		},
		{
			name: "remove unknown",
			fn: func(_, _ models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error { return tx.Remove(uuid.New()) }
			},
			target: itemdomain.ErrItemNotFound,
		},
		{
			name: "replace unknown",
			fn: func(_, _ models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error { return tx.Replace(models.Item{ID: uuid.New()}) }
			},
			target: itemdomain.ErrItemNotFound,
		},
		{
			name: "demote root",
			fn: func(root, _ models.Item) func(tx repositories.Tx) error {
				return func(tx repositories.Tx) error {
					root.IsRoot = false
					return tx.Replace(root)
				}
			},
			target: itemdomain.ErrProtectedItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, root, cabinet := seeded(t)
			_, err := repo.Transact(ctx, tt.fn(root, cabinet))
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestItemRepository_RemoveReindexes(t *testing.T) {
	repo, root, cabinet := seeded(t)
	folder := *models.NewItem("Folder", "", "Cabinet", "")
	shelf := *models.NewItem("Shelf", "", "All", "")

	_, err := repo.Transact(context.Background(), func(tx repositories.Tx) error {
		if err := tx.Insert(folder); err != nil {
			return err
		}
		if err := tx.Insert(shelf); err != nil {
			return err
		}
		if err := tx.Remove(cabinet.ID); err != nil {
			return err
		}
		got, ok := tx.Get(shelf.ID)
		if !ok || got.ID != shelf.ID {
			t.Errorf("index out of date after remove: %+v", got)
		}
		r, ok := tx.Root()
		if !ok || r.ID != root.ID {
			t.Errorf("root lookup failed: %+v", r)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, _ := repo.Snapshot(context.Background())
	if len(snap.Items) != 3 || snap.Items[1].ID != folder.ID || snap.Items[2].ID != shelf.ID {
		t.Fatalf("unexpected order after remove: %+v", snap.Items)
	}
}

func TestItemRepository_CancelledContext(t *testing.T) {
	repo := NewItemRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Transact(ctx, func(tx repositories.Tx) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestItemRepository_ConcurrentWritesSerialize(t *testing.T) {
	repo, _, _ := seeded(t)
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Transact(context.Background(), func(tx repositories.Tx) error {
				return tx.Insert(*models.NewItem("Box", "", "All", ""))
			})
		}()
	}
	wg.Wait()

	snap, _ := repo.Snapshot(context.Background())
	if len(snap.Items) != 2+writers {
		t.Fatalf("expected %d items, got %d", 2+writers, len(snap.Items))
	}
	if snap.Version != 1+writers {
		t.Fatalf("expected version %d, got %d", 1+writers, snap.Version)
	}
}
