// Package seed loads the initial catalog from YAML.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ghuser/stowage/services/item/domain/models"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	// ErrNoRoot indicates no entry can be the root: none sets is_root and
	// none has an empty location.
	ErrNoRoot = errors.New("seed: no root item")

	// ErrMultipleRoot indicates more than one entry sets is_root, or more
	// than one has an empty location when none does.
	ErrMultipleRoot = errors.New("seed: more than one root item")
)

// Document is the on-disk seed format.
type Document struct {
	Items []Entry `yaml:"items"`
}

// Entry is one seeded item. ID is generated when empty. When no entry sets
// is_root, the single entry with an empty location becomes the root.
type Entry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	ImageURL    string `yaml:"image_url"`
	IsRoot      bool   `yaml:"is_root"`
}

// Load reads the seed file at path, or the built-in catalog when path is empty.
func Load(path string) ([]models.Item, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a seed document into items in document order.
func Parse(data []byte) ([]models.Item, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}

	root, err := rootIndex(doc.Items)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(doc.Items))
	items := make([]models.Item, 0, len(doc.Items))
	for i, e := range doc.Items {
		name, err := models.NewItemName(e.Name)
		if err != nil {
			return nil, fmt.Errorf("seed: item %d: %w", i, err)
		}

		var item *models.Item
		if i == root {
			if e.Location != "" {
				return nil, fmt.Errorf("seed: root %q must not have a location", e.Name)
			}
			item = models.NewRootItem(name, e.Description, e.ImageURL)
		} else {
			if e.Location == "" {
				return nil, fmt.Errorf("seed: item %q has no location", e.Name)
			}
			item = models.NewItem(name, e.Description, e.Location, e.ImageURL)
		}

		if e.ID != "" {
			id, err := uuid.Parse(e.ID)
			if err != nil {
				return nil, fmt.Errorf("seed: item %q: invalid id: %w", e.Name, err)
			}
			item.ID = id
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("seed: duplicate id %s", item.ID)
		}
		seen[item.ID] = true
		items = append(items, *item)
	}
	return items, nil
}

func rootIndex(entries []Entry) (int, error) {
	root := -1
	for i, e := range entries {
		if !e.IsRoot {
			continue
		}
		if root >= 0 {
			return -1, ErrMultipleRoot
		}
		root = i
	}
	if root >= 0 {
		return root, nil
	}

	for i, e := range entries {
		if e.Location != "" {
			continue
		}
		if root >= 0 {
			return -1, ErrMultipleRoot
		}
		root = i
	}
	if root < 0 {
		return -1, ErrNoRoot
	}
	return root, nil
}
