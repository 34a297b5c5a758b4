package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImageURL is stored when a draft or patch carries no image reference.
const DefaultImageURL = "/placeholder.svg"

// Item is a single catalog entry: a physical thing, possibly a container
// for other things. Location holds the Name of the containing item and is
// empty only for the root.
type Item struct {
	ID          uuid.UUID
	Name        ItemName
	Description string
	Location    string
	ImageURL    string
	IsRoot      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft carries the caller-supplied fields of a new item.
type Draft struct {
	Name        string
	Description string
	Location    string
	ImageURL    string
}

// Patch replaces every mutable field of an existing item.
type Patch struct {
	Name        string
	Description string
	Location    string
	ImageURL    string
}

// NewItem constructs a non-root Item with generated ID and current timestamps.
func NewItem(name ItemName, description, location, imageURL string) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Location:    location,
		ImageURL:    imageOrDefault(imageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewRootItem constructs the top of the hierarchy. The root has no location.
func NewRootItem(name ItemName, description, imageURL string) *Item {
	item := NewItem(name, description, "", imageURL)
	item.IsRoot = true
	return item
}

// Apply overwrites the mutable fields with p. It reports whether anything
// changed; UpdatedAt is only touched when it did.
func (i *Item) Apply(name ItemName, p Patch) bool {
	image := imageOrDefault(p.ImageURL)
	if i.Name == name && i.Description == p.Description && i.Location == p.Location && i.ImageURL == image {
		return false
	}
	i.Name = name
	i.Description = p.Description
	i.Location = p.Location
	i.ImageURL = image
	i.UpdatedAt = time.Now().UTC()
	return true
}

func imageOrDefault(url string) string {
	if url == "" {
		return DefaultImageURL
	}
	return url
}
