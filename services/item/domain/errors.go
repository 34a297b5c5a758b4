package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same id is already stored.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItem indicates a draft or patch violates item constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrProtectedItem indicates an operation the root item does not allow.
	ErrProtectedItem = errors.New("item is protected")
)

// ValidationError names the field that failed validation.
// It matches ErrInvalidItem under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item %s: %s", e.Field, e.Reason)
}

// Is allows errors.Is() to match against ErrInvalidItem.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidItem
}

// ProtectedItemError is returned when a mutation targets the root item in a
// way the root never allows: delete, relocate or a non-empty location.
type ProtectedItemError struct {
	ItemID uuid.UUID
	Reason string
}

func (e *ProtectedItemError) Error() string {
	return fmt.Sprintf("item %s is protected: %s", e.ItemID, e.Reason)
}

// Is allows errors.Is() to match against ErrProtectedItem.
func (e *ProtectedItemError) Is(target error) bool {
	return target == ErrProtectedItem
}

// NotFound wraps ErrItemNotFound with the missing id.
func NotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}
