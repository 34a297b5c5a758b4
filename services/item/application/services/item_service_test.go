package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/stowage/pkg/auth"
	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/logger"
	itemdomain "github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/events"
	"github.com/ghuser/stowage/services/item/domain/models"
	"github.com/ghuser/stowage/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/stowage/services/item/infrastructure/seed"
)

var (
	rootID    = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	cabinetID = uuid.MustParse("00000000-0000-4000-8000-000000000002")
	folderID  = uuid.MustParse("00000000-0000-4000-8000-000000000003")
)

type fakePublisher struct {
	events []events.ItemChangedEvent
	err    error
}

func (p *fakePublisher) PublishItemChanged(_ context.Context, evt events.ItemChangedEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

// builtinCatalog is the embedded seed: All things > Office cabinet > Folder.
func builtinCatalog(t testing.TB) []models.Item {
	t.Helper()
	items, err := seed.Load("")
	if err != nil {
		t.Fatalf("load built-in catalog: %v", err)
	}
	return items
}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// newSeededService returns a service over the built-in catalog:
// All things > Office cabinet > Folder "Contracts 2024".
func newSeededService(t *testing.T, pub *fakePublisher, m *Metrics) (*ItemService, *memory.ItemRepository) {
	t.Helper()
	repo := memory.NewItemRepository()
	var p ChangePublisher
	if pub != nil {
		p = pub
	}
	svc := NewItemService(repo, nil, p, m, nopLogger())
	if err := svc.Seed(context.Background(), builtinCatalog(t)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc, repo
}

func version(t *testing.T, repo *memory.ItemRepository) uint64 {
	t.Helper()
	snap, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return snap.Version
}

func hasWarning(ws []itemdomain.Warning, code itemdomain.WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("empty location defaults to root", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		out, err := svc.Create(ctx, models.Draft{Name: "Drawer"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Item.Location != "All things" {
			t.Errorf("expected root location, got %q", out.Item.Location)
		}
		if out.Item.ImageURL != models.DefaultImageURL {
			t.Errorf("expected default image, got %q", out.Item.ImageURL)
		}
		if len(out.Warnings) != 0 {
			t.Errorf("expected no warnings, got %+v", out.Warnings)
		}
	})

	t.Run("dangling location accepted with warning", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		out, err := svc.Create(ctx, models.Draft{Name: "Box", Location: "Attic"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasWarning(out.Warnings, itemdomain.WarningDanglingLocation) {
			t.Errorf("expected dangling warning, got %+v", out.Warnings)
		}
	})

	t.Run("self location is a cycle", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		out, err := svc.Create(ctx, models.Draft{Name: "Loop", Location: "Loop"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasWarning(out.Warnings, itemdomain.WarningLocationCycle) {
			t.Errorf("expected cycle warning, got %+v", out.Warnings)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, repo := newSeededService(t, nil, nil)
		before := version(t, repo)
		_, err := svc.Create(ctx, models.Draft{Name: ""})
		if !errors.Is(err, itemdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
		if version(t, repo) != before {
			t.Error("failed create must not move the version")
		}
	})

	t.Run("no root and no location", func(t *testing.T) {
		svc := NewItemService(memory.NewItemRepository(), nil, nil, nil, nopLogger())
		if _, err := svc.Create(ctx, models.Draft{Name: "Drawer"}); !errors.Is(err, itemdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	t.Run("publishes event with editor", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, _ := newSeededService(t, pub, nil)
		editor := uuid.New()
		out, err := svc.Create(auth.WithEditorID(ctx, editor), models.Draft{Name: "Box", Location: "Attic"})
		if err != nil {
			t.Fatal(err)
		}
		if len(pub.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(pub.events))
		}
		evt := pub.events[0]
		if evt.Action != events.ActionCreated || evt.ItemID != out.Item.ID || evt.EditorID != editor {
			t.Errorf("unexpected event: %+v", evt)
		}
		if evt.Version != events.CurrentVersion || evt.EventID == uuid.Nil {
			t.Errorf("event identity not stamped: %+v", evt)
		}
		if len(evt.Warnings) != 1 || evt.Warnings[0] != string(itemdomain.WarningDanglingLocation) {
			t.Errorf("expected warning codes on event, got %v", evt.Warnings)
		}
	})

	t.Run("publish failure does not fail the mutation", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("bus down")}
		svc, repo := newSeededService(t, pub, nil)
		before := version(t, repo)
		if _, err := svc.Create(ctx, models.Draft{Name: "Box"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if version(t, repo) != before+1 {
			t.Error("mutation should be committed")
		}
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		_, err := svc.Update(ctx, uuid.New(), models.Patch{Name: "X", Location: "All things"})
		if !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("root cannot gain a location", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		_, err := svc.Update(ctx, rootID, models.Patch{Name: "All things", Location: "Office cabinet"})
		if !errors.Is(err, itemdomain.ErrProtectedItem) {
			t.Fatalf("expected ErrProtectedItem, got %v", err)
		}
	})

	t.Run("non-root needs a location", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		_, err := svc.Update(ctx, cabinetID, models.Patch{Name: "Office cabinet"})
		if !errors.Is(err, itemdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		_, err := svc.Update(ctx, cabinetID, models.Patch{Location: "All things"})
		if !errors.Is(err, itemdomain.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	t.Run("no-op keeps version and publishes nothing", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, repo := newSeededService(t, pub, nil)
		before := version(t, repo)
		cur, _ := svc.Get(ctx, cabinetID)
		out, err := svc.Update(ctx, cabinetID, models.Patch{
			Name: cur.Name.String(), Description: cur.Description, Location: cur.Location, ImageURL: cur.ImageURL,
		})
		if err != nil {
			t.Fatal(err)
		}
		if out.Item.ID != cabinetID {
			t.Errorf("unexpected item: %+v", out.Item)
		}
		if version(t, repo) != before {
			t.Error("no-op update must not move the version")
		}
		if len(pub.events) != 0 {
			t.Errorf("expected no events, got %d", len(pub.events))
		}
	})

	t.Run("rename orphans children", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		out, err := svc.Update(ctx, cabinetID, models.Patch{Name: "Steel cabinet", Location: "All things"})
		if err != nil {
			t.Fatal(err)
		}
		if out.Item.ID != cabinetID || out.Item.Name.String() != "Steel cabinet" {
			t.Errorf("unexpected item: %+v", out.Item)
		}
		if !hasWarning(out.Warnings, itemdomain.WarningOrphanedChildren) {
			t.Errorf("expected orphaned warning, got %+v", out.Warnings)
		}
		folder, _ := svc.Get(ctx, folderID)
		if folder.Location != "Office cabinet" {
			t.Errorf("renames must not cascade, folder location is %q", folder.Location)
		}
	})

	t.Run("rename keeps children when the name is still carried", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		if _, err := svc.Create(ctx, models.Draft{Name: "Office cabinet"}); err != nil {
			t.Fatal(err)
		}
		out, err := svc.Update(ctx, cabinetID, models.Patch{Name: "Steel cabinet", Location: "All things"})
		if err != nil {
			t.Fatal(err)
		}
		if hasWarning(out.Warnings, itemdomain.WarningOrphanedChildren) {
			t.Errorf("unexpected orphaned warning: %+v", out.Warnings)
		}
	})

	t.Run("root rename", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, _ := newSeededService(t, pub, nil)
		out, err := svc.Update(ctx, rootID, models.Patch{Name: "Everything"})
		if err != nil {
			t.Fatal(err)
		}
		if !out.Item.IsRoot || out.Item.Location != "" {
			t.Errorf("root must stay root: %+v", out.Item)
		}
		if !hasWarning(out.Warnings, itemdomain.WarningOrphanedChildren) {
			t.Errorf("expected orphaned warning, got %+v", out.Warnings)
		}
		if len(pub.events) != 1 || pub.events[0].Action != events.ActionUpdated {
			t.Errorf("expected one update event, got %+v", pub.events)
		}
	})
}

func TestItemService_Relocate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       uuid.UUID
		location string
		wantErr  error
		wantWarn itemdomain.WarningCode
	}{
		{name: "root is protected", id: rootID, location: "Office cabinet", wantErr: itemdomain.ErrProtectedItem},
		{name: "unknown id", id: uuid.New(), location: "All things", wantErr: itemdomain.ErrItemNotFound},
		{name: "empty target", id: folderID, location: "", wantErr: itemdomain.ErrInvalidItem},
		{name: "valid move", id: folderID, location: "All things"},
		{name: "dangling target", id: folderID, location: "Attic", wantWarn: itemdomain.WarningDanglingLocation},
		{name: "cycle target", id: cabinetID, location: `Folder "Contracts 2024"`, wantWarn: itemdomain.WarningLocationCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newSeededService(t, nil, nil)
			before := version(t, repo)
			out, err := svc.Relocate(ctx, tt.id, tt.location)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if version(t, repo) != before {
					t.Error("failed relocate must not move the version")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Item.Location != tt.location {
				t.Errorf("expected location %q, got %q", tt.location, out.Item.Location)
			}
			if tt.wantWarn != "" && !hasWarning(out.Warnings, tt.wantWarn) {
				t.Errorf("expected %s warning, got %+v", tt.wantWarn, out.Warnings)
			}
			if tt.wantWarn == "" && len(out.Warnings) != 0 {
				t.Errorf("unexpected warnings: %+v", out.Warnings)
			}
			if version(t, repo) != before+1 {
				t.Error("relocate should move the version by one")
			}
		})
	}
}

func TestItemService_Create_LeavesOthersUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t, nil, nil)

	drafts := []models.Draft{
		{Name: "Drawer", Location: "Office cabinet"},
		{Name: "Office cabinet"}, // namesake of an existing item
		{Name: "Box", Location: "Nowhere"},
	}
	seen := map[uuid.UUID]bool{}
	for _, d := range drafts {
		before, err := svc.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for _, it := range before.Items {
			seen[it.ID] = true
		}

		out, err := svc.Create(ctx, d)
		if err != nil {
			t.Fatalf("create %q: %v", d.Name, err)
		}
		after, err := svc.List(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if len(after.Items) != len(before.Items)+1 {
			t.Fatalf("create %q: expected %d items, got %d", d.Name, len(before.Items)+1, len(after.Items))
		}
		if seen[out.Item.ID] {
			t.Fatalf("create %q reused id %s", d.Name, out.Item.ID)
		}
		seen[out.Item.ID] = true

		var untouched []models.Item
		for _, it := range after.Items {
			if it.ID != out.Item.ID {
				untouched = append(untouched, it)
			}
		}
		if !reflect.DeepEqual(untouched, before.Items) {
			t.Errorf("create %q changed existing items:\nbefore %+v\nafter  %+v", d.Name, before.Items, untouched)
		}
		if after.Version != before.Version+1 {
			t.Errorf("create %q: expected version %d, got %d", d.Name, before.Version+1, after.Version)
		}
	}
}

func TestItemService_Relocate_Idempotent(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc, repo := newSeededService(t, pub, nil)

	if _, err := svc.Relocate(ctx, folderID, "All things"); err != nil {
		t.Fatal(err)
	}
	after := version(t, repo)
	if _, err := svc.Relocate(ctx, folderID, "All things"); err != nil {
		t.Fatal(err)
	}
	if version(t, repo) != after {
		t.Error("relocating to the current location must not move the version")
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	if evt := pub.events[0]; evt.Action != events.ActionRelocated || evt.PreviousLocation != "Office cabinet" {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("root is protected", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, repo := newSeededService(t, pub, nil)
		before := version(t, repo)
		if _, err := svc.Delete(ctx, rootID); !errors.Is(err, itemdomain.ErrProtectedItem) {
			t.Fatalf("expected ErrProtectedItem, got %v", err)
		}
		snap, err := svc.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(snap.Items) != 3 {
			t.Errorf("rejected delete changed the item count: %d", len(snap.Items))
		}
		if snap.Version != before {
			t.Errorf("rejected delete moved the version: %d -> %d", before, snap.Version)
		}
		if len(pub.events) != 0 {
			t.Errorf("rejected delete published %d events", len(pub.events))
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		if _, err := svc.Delete(ctx, uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("children become orphans", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, _ := newSeededService(t, pub, nil)
		out, err := svc.Delete(ctx, cabinetID)
		if err != nil {
			t.Fatal(err)
		}
		if !hasWarning(out.Warnings, itemdomain.WarningOrphanedChildren) {
			t.Errorf("expected orphaned warning, got %+v", out.Warnings)
		}
		if _, err := svc.Get(ctx, folderID); err != nil {
			t.Errorf("delete must not cascade: %v", err)
		}
		report, err := svc.Orphans(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Orphans) != 1 || report.Orphans[0].ID != folderID {
			t.Errorf("expected folder to be orphaned, got %+v", report.Orphans)
		}
		if len(pub.events) != 1 || pub.events[0].Action != events.ActionDeleted {
			t.Errorf("expected one delete event, got %+v", pub.events)
		}
	})

	t.Run("leaf has no warning", func(t *testing.T) {
		svc, _ := newSeededService(t, nil, nil)
		out, err := svc.Delete(ctx, folderID)
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Warnings) != 0 {
			t.Errorf("unexpected warnings: %+v", out.Warnings)
		}
	})
}

func TestItemService_Queries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t, nil, nil)

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Items) != 3 || list.Items[0].ID != rootID {
		t.Errorf("unexpected list: %+v", list.Items)
	}

	children, err := svc.ChildrenOf(ctx, "All things")
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 || children[0].ID != cabinetID {
		t.Errorf("unexpected children: %+v", children)
	}

	facts, err := svc.Facts(ctx, folderID)
	if err != nil {
		t.Fatal(err)
	}
	if facts.Depth != 2 || !facts.IsLeaf || facts.Parent == nil || facts.Parent.ID != cabinetID {
		t.Errorf("unexpected facts: %+v", facts)
	}
	if len(facts.Ancestors) != 2 || facts.Ancestors[1].ID != rootID {
		t.Errorf("unexpected ancestors: %+v", facts.Ancestors)
	}

	rootFacts, err := svc.Facts(ctx, rootID)
	if err != nil {
		t.Fatal(err)
	}
	if rootFacts.Depth != 0 || rootFacts.IsLeaf || rootFacts.Parent != nil {
		t.Errorf("unexpected root facts: %+v", rootFacts)
	}

	if _, err := svc.Facts(ctx, uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemService_Materialize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t, nil, nil)

	tree, err := svc.Materialize(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Name != "All things" || tree.Item == nil || tree.Item.ID != rootID {
		t.Fatalf("expected tree at root, got %+v", tree)
	}
	if tree.Size != 2 || len(tree.Children) != 1 || len(tree.Children[0].Children) != 1 {
		t.Errorf("unexpected tree shape: size=%d", tree.Size)
	}

	sub, err := svc.Materialize(ctx, "Office cabinet")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Size != 1 || sub.Children[0].Item.ID != folderID {
		t.Errorf("unexpected subtree: %+v", sub)
	}

	missing, err := svc.Materialize(ctx, "Nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if missing.Item != nil || len(missing.Children) != 0 {
		t.Errorf("expected empty tree, got %+v", missing)
	}
}

func TestItemService_Seed_OnlyOnce(t *testing.T) {
	svc, _ := newSeededService(t, nil, nil)
	if err := svc.Seed(context.Background(), builtinCatalog(t)); !errors.Is(err, itemdomain.ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}

func TestItemService_Seed_RequiresRoot(t *testing.T) {
	svc := NewItemService(memory.NewItemRepository(), nil, nil, nil, nopLogger())
	items := builtinCatalog(t)[1:]
	if err := svc.Seed(context.Background(), items); !errors.Is(err, itemdomain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestItemService_Metrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	svc, _ := newSeededService(t, nil, m)
	if _, err := svc.Create(ctx, models.Draft{Name: "Box", Location: "Attic"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Relocate(ctx, folderID, "All things"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Materialize(ctx, ""); err != nil {
		t.Fatal(err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}

	sums := map[string]int64{}
	var treeCount uint64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					for _, kv := range dp.Attributes.ToSlice() {
						sums[md.Name+"/"+kv.Value.AsString()] += dp.Value
					}
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					treeCount += dp.Count
				}
			}
		}
	}

	if sums["item_mutations_total/create"] != 1 || sums["item_mutations_total/relocate"] != 1 {
		t.Errorf("unexpected mutation counts: %v", sums)
	}
	if sums["item_warnings_total/dangling_location"] != 1 {
		t.Errorf("unexpected warning counts: %v", sums)
	}
	if treeCount != 1 {
		t.Errorf("expected one tree observation, got %d", treeCount)
	}
}
