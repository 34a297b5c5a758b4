package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewItem(t *testing.T) {
	name := ItemName("Office cabinet")

	t.Run("returns item with non-zero ID", func(t *testing.T) {
		item := NewItem(name, "", "All things", "")
		if item.ID == uuid.Nil {
			t.Fatal("expected non-zero UUID for ID")
		}
		if item.IsRoot {
			t.Fatal("NewItem must not produce a root")
		}
	})

	t.Run("defaults image url", func(t *testing.T) {
		item := NewItem(name, "", "All things", "")
		if item.ImageURL != DefaultImageURL {
			t.Fatalf("expected %q, got %q", DefaultImageURL, item.ImageURL)
		}
		item = NewItem(name, "", "All things", "data:image/png;base64,AAAA")
		if item.ImageURL != "data:image/png;base64,AAAA" {
			t.Fatalf("explicit image url was replaced: %q", item.ImageURL)
		}
	})

	t.Run("sets timestamps to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		item := NewItem(name, "", "All things", "")
		after := time.Now().UTC()
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
		if !item.UpdatedAt.Equal(item.CreatedAt) {
			t.Fatalf("UpdatedAt %v should equal CreatedAt %v", item.UpdatedAt, item.CreatedAt)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		item1 := NewItem(name, "", "", "")
		item2 := NewItem(name, "", "", "")
		if item1.ID == item2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestNewRootItem(t *testing.T) {
	root := NewRootItem("All things", "Root category for all items", "")
	if !root.IsRoot {
		t.Fatal("expected IsRoot")
	}
	if root.Location != "" {
		t.Fatalf("root location must be empty, got %q", root.Location)
	}
}

func TestItem_Apply(t *testing.T) {
	item := NewItem("Folder", "old", "Cabinet", "")
	stamp := item.UpdatedAt

	t.Run("identical patch is not a change", func(t *testing.T) {
		changed := item.Apply("Folder", Patch{Name: "Folder", Description: "old", Location: "Cabinet"})
		if changed {
			t.Fatal("expected no change")
		}
		if !item.UpdatedAt.Equal(stamp) {
			t.Fatal("UpdatedAt must not move on a no-op")
		}
	})

	t.Run("patch replaces every field", func(t *testing.T) {
		changed := item.Apply("Binder", Patch{Name: "Binder", Description: "new", Location: "Shelf", ImageURL: "/binder.png"})
		if !changed {
			t.Fatal("expected change")
		}
		if item.Name != "Binder" || item.Description != "new" || item.Location != "Shelf" || item.ImageURL != "/binder.png" {
			t.Fatalf("unexpected item after patch: %+v", item)
		}
	})
}
