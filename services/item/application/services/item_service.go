package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stowage/pkg/auth"
	pkgcache "github.com/ghuser/stowage/pkg/cache"
	"github.com/ghuser/stowage/pkg/logger"
	"github.com/ghuser/stowage/pkg/telemetry"
	itemdomain "github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/events"
	"github.com/ghuser/stowage/services/item/domain/models"
	"github.com/ghuser/stowage/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/stowage/services/item/domain/services"
)

// ChangePublisher delivers committed catalog changes to other processes.
type ChangePublisher interface {
	PublishItemChanged(ctx context.Context, evt events.ItemChangedEvent) error
}

// Outcome is the result of a committed mutation.
type Outcome struct {
	Item     models.Item
	Warnings []itemdomain.Warning
}

// Facts are the derived hierarchy properties of a single item.
type Facts struct {
	Item      models.Item
	Depth     int
	IsLeaf    bool
	Parent    *models.Item
	Ancestors []models.Item
}

// OrphanReport lists items cut off from the root.
type OrphanReport struct {
	// Orphans have a location that names no item.
	Orphans []models.Item
	// Unreachable also includes descendants of orphans and cyclic islands.
	Unreachable []models.Item
}

// ItemService orchestrates catalog mutations and hierarchy queries.
// Change events are published after a mutation commits. Materialized trees
// are served from Redis when a TreeCache is configured.
type ItemService struct {
	repo      repositories.ItemRepository
	cache     TreeCache
	publisher ChangePublisher
	metrics   *Metrics
	log       logger.Logger

	cacheWriteTimeout time.Duration
}

// TreeCache memoizes materialized trees per snapshot. A miss is redis.Nil.
// pkg/cache.TreeCache implements it.
type TreeCache interface {
	Get(ctx context.Context, epoch uuid.UUID, version uint64, rootName string) (*pkgcache.CachedTree, error)
	Set(ctx context.Context, epoch uuid.UUID, version uint64, tree *pkgcache.CachedTree) error
}

// treeCacheWriteTimeout bounds the background write that warms the cache.
const treeCacheWriteTimeout = 2 * time.Second

// NewItemService returns an ItemService. cache, publisher and metrics may be nil.
func NewItemService(
	repo repositories.ItemRepository,
	treeCache TreeCache,
	publisher ChangePublisher,
	metrics *Metrics,
	log logger.Logger,
) *ItemService {
	return &ItemService{
		repo:              repo,
		cache:             treeCache,
		publisher:         publisher,
		metrics:           metrics,
		log:               log,
		cacheWriteTimeout: treeCacheWriteTimeout,
	}
}

// Create validates d and appends a new item. An empty location places the
// item in the root. A location naming no item is accepted with a warning.
func (s *ItemService) Create(ctx context.Context, d models.Draft) (*Outcome, error) {
	name, err := domainsvcs.ParseName(d.Name)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	var out Outcome
	_, err = s.repo.Transact(ctx, func(tx repositories.Tx) error {
		location := d.Location
		if location == "" {
			root, ok := tx.Root()
			if !ok {
				return &itemdomain.ValidationError{Field: "location", Reason: "required while the catalog has no root"}
			}
			location = root.Name.String()
		}

		item := models.NewItem(name, d.Description, location, d.ImageURL)
		if err := domainsvcs.ValidateItem(item); err != nil {
			return err
		}
		if err := tx.Insert(*item); err != nil {
			return err
		}
		out.Item = *item
		out.Warnings = locationWarnings(tx.Items(), *item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.committed(ctx, opCreate, events.ActionCreated, &out, "")
	return &out, nil
}

// Get returns a single item.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	for i := range snap.Items {
		if snap.Items[i].ID == id {
			item := snap.Items[i]
			return &item, nil
		}
	}
	return nil, itemdomain.NotFound(id)
}

// List returns the whole catalog in insertion order.
func (s *ItemService) List(ctx context.Context) (*repositories.Snapshot, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return snap, nil
}

// Update replaces every mutable field of an item. The root must keep an
// empty location and every other item must have one. Renames do not carry
// children along: items located in the old name are reported as orphaned
// when no other item still carries it.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, p models.Patch) (*Outcome, error) {
	name, err := domainsvcs.ParseName(p.Name)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	var (
		out      Outcome
		previous string
		changed  bool
	)
	_, err = s.repo.Transact(ctx, func(tx repositories.Tx) error {
		cur, ok := tx.Get(id)
		if !ok {
			return itemdomain.NotFound(id)
		}
		if cur.IsRoot && p.Location != "" {
			return &itemdomain.ProtectedItemError{ItemID: id, Reason: "root item cannot have a location"}
		}
		if !cur.IsRoot && p.Location == "" {
			return &itemdomain.ValidationError{Field: "location", Reason: "must not be empty"}
		}

		next := cur
		out.Item = cur
		if changed = next.Apply(name, p); !changed {
			return nil
		}
		if err := domainsvcs.ValidateItem(&next); err != nil {
			return err
		}
		if err := tx.Replace(next); err != nil {
			return err
		}

		items := tx.Items()
		out.Item = next
		if next.Location != cur.Location || next.Name != cur.Name {
			out.Warnings = locationWarnings(items, next)
		}
		if next.Name != cur.Name {
			out.Warnings = append(out.Warnings, orphanWarnings(items, cur.Name.String())...)
		}
		if next.Location != cur.Location {
			previous = cur.Location
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if changed {
		s.committed(ctx, opUpdate, events.ActionUpdated, &out, previous)
	}
	return &out, nil
}

// Relocate moves an item into the item named location. Moving to the
// current location is a no-op. Dangling and cyclic targets are accepted
// with a warning.
func (s *ItemService) Relocate(ctx context.Context, id uuid.UUID, location string) (*Outcome, error) {
	var (
		out      Outcome
		previous string
		moved    bool
	)
	_, err := s.repo.Transact(ctx, func(tx repositories.Tx) error {
		cur, ok := tx.Get(id)
		if !ok {
			return itemdomain.NotFound(id)
		}
		if cur.IsRoot {
			return &itemdomain.ProtectedItemError{ItemID: id, Reason: "root item cannot be relocated"}
		}
		if location == "" {
			return &itemdomain.ValidationError{Field: "location", Reason: "must not be empty"}
		}

		out.Item = cur
		if cur.Location == location {
			return nil
		}

		next := cur
		next.Location = location
		next.UpdatedAt = time.Now().UTC()
		if err := tx.Replace(next); err != nil {
			return err
		}
		out.Item = next
		out.Warnings = locationWarnings(tx.Items(), next)
		previous = cur.Location
		moved = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("relocate item: %w", err)
	}

	if moved {
		s.committed(ctx, opRelocate, events.ActionRelocated, &out, previous)
	}
	return &out, nil
}

// Delete removes a single item. Children are left in place; when no other
// item carries the deleted name they are reported as orphaned.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	var out Outcome
	_, err := s.repo.Transact(ctx, func(tx repositories.Tx) error {
		cur, ok := tx.Get(id)
		if !ok {
			return itemdomain.NotFound(id)
		}
		if cur.IsRoot {
			return &itemdomain.ProtectedItemError{ItemID: id, Reason: "root item cannot be deleted"}
		}
		if err := tx.Remove(id); err != nil {
			return err
		}
		out.Item = cur
		out.Warnings = orphanWarnings(tx.Items(), cur.Name.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}

	s.committed(ctx, opDelete, events.ActionDeleted, &out, "")
	return &out, nil
}

// ChildrenOf returns the items directly located in location.
func (s *ItemService) ChildrenOf(ctx context.Context, location string) ([]models.Item, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("children of %q: %w", location, err)
	}
	return domainsvcs.ChildrenOf(snap.Items, location), nil
}

// Facts returns the derived hierarchy properties of an item.
func (s *ItemService) Facts(ctx context.Context, id uuid.UUID) (*Facts, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("item facts: %w", err)
	}

	ancestors, err := domainsvcs.Ancestors(snap.Items, id)
	if err != nil {
		return nil, err
	}
	leaf, err := domainsvcs.IsLeaf(snap.Items, id)
	if err != nil {
		return nil, err
	}
	parent, err := domainsvcs.ParentOf(snap.Items, id)
	if err != nil {
		return nil, err
	}

	f := &Facts{Depth: len(ancestors), IsLeaf: leaf, Parent: parent, Ancestors: ancestors}
	for _, it := range snap.Items {
		if it.ID == id {
			f.Item = it
			break
		}
	}
	return f, nil
}

// Orphans reports items cut off from the root.
func (s *ItemService) Orphans(ctx context.Context) (*OrphanReport, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("orphans: %w", err)
	}
	return &OrphanReport{
		Orphans:     domainsvcs.Orphans(snap.Items),
		Unreachable: domainsvcs.Unreachable(snap.Items),
	}, nil
}

// Materialize returns the tree below rootName, or below the root item when
// rootName is empty. Results are read through the tree cache:
//  1. Look up the tree for the current snapshot identity.
//  2. On miss or cache error, build it from the snapshot.
//  3. Asynchronously warm the cache with the result.
func (s *ItemService) Materialize(ctx context.Context, rootName string) (*domainsvcs.Tree, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	if rootName == "" {
		if root, ok := domainsvcs.RootOf(snap.Items); ok {
			rootName = root.Name.String()
		}
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, snap.Epoch, snap.Version, rootName)
		switch {
		case err == nil:
			if tree, ok := fromCachedTree(cached, snap.Items); ok {
				return tree, nil
			}
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "tree cache read failed", "error", err, "root", rootName)
		}
	}

	tree := domainsvcs.Materialize(snap.Items, rootName)
	s.metrics.tree(ctx, tree.Size)
	if len(tree.Cycles) > 0 {
		s.log.WarnContext(ctx, "location cycle in tree", "root", rootName, "cycles", len(tree.Cycles))
	}

	if s.cache != nil {
		cached := toCachedTree(tree)
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cacheWriteTimeout)
		go func() {
			defer cancel()
			if err := s.cache.Set(writeCtx, snap.Epoch, snap.Version, cached); err != nil {
				s.log.WarnContext(writeCtx, "tree cache write failed", "error", err, "root", cached.Name)
			}
		}()
	}

	return tree, nil
}

// Seed loads items into an empty catalog in a single transaction.
func (s *ItemService) Seed(ctx context.Context, items []models.Item) error {
	snap, err := s.repo.Transact(ctx, func(tx repositories.Tx) error {
		if n := len(tx.Items()); n > 0 {
			return fmt.Errorf("%w: catalog already holds %d item(s)", itemdomain.ErrItemAlreadyExists, n)
		}
		for i := range items {
			if err := domainsvcs.ValidateItem(&items[i]); err != nil {
				return err
			}
			if err := tx.Insert(items[i]); err != nil {
				return err
			}
		}
		if _, ok := tx.Root(); !ok {
			return &itemdomain.ValidationError{Field: "items", Reason: "seed must contain a root item"}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.log.Info("catalog seeded", "items", len(snap.Items), "epoch", snap.Epoch)
	return nil
}

// committed logs, counts and publishes a mutation that has been committed.
func (s *ItemService) committed(ctx context.Context, op string, action events.Action, out *Outcome, previous string) {
	s.log.InfoContext(ctx, "item "+string(action), "item_id", out.Item.ID, "name", out.Item.Name.String())
	for _, w := range out.Warnings {
		s.log.WarnContext(ctx, w.Message, "item_id", out.Item.ID, "code", string(w.Code))
	}
	s.metrics.mutation(ctx, op, out.Warnings)

	if s.publisher == nil {
		return
	}
	editorID, _ := auth.EditorIDFromCtx(ctx)
	evt := events.ItemChangedEvent{
		EventID:          uuid.New(),
		Version:          events.CurrentVersion,
		Action:           action,
		ItemID:           out.Item.ID,
		EditorID:         editorID,
		Name:             out.Item.Name.String(),
		Location:         out.Item.Location,
		PreviousLocation: previous,
		Warnings:         warningCodes(out.Warnings),
		OccurredAt:       time.Now().UTC(),
	}
	if err := s.publisher.PublishItemChanged(ctx, evt); err != nil {
		s.log.ErrorContext(ctx, "failed to publish item change", "error", err, "item_id", out.Item.ID, "topic", evt.Topic())
		telemetry.CaptureError(ctx, err)
	}
}

func locationWarnings(items []models.Item, item models.Item) []itemdomain.Warning {
	switch {
	case domainsvcs.IsDangling(items, item.Location):
		return []itemdomain.Warning{itemdomain.DanglingLocation(item.Location)}
	case domainsvcs.CreatesCycle(items, item.ID, item.Location):
		return []itemdomain.Warning{itemdomain.LocationCycle(item.Name.String(), item.Location)}
	}
	return nil
}

func orphanWarnings(items []models.Item, name string) []itemdomain.Warning {
	if domainsvcs.HasName(items, name) {
		return nil
	}
	if n := domainsvcs.CountLocatedIn(items, name); n > 0 {
		return []itemdomain.Warning{itemdomain.OrphanedChildren(name, n)}
	}
	return nil
}

func warningCodes(ws []itemdomain.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w.Code)
	}
	return out
}
