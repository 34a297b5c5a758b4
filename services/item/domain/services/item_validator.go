// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/stowage/services/item/domain"
	"github.com/ghuser/stowage/services/item/domain/models"
)

// ParseName builds an ItemName from raw input and applies ValidateName.
func ParseName(raw string) (models.ItemName, error) {
	name, err := models.NewItemName(raw)
	if err != nil {
		return "", &domain.ValidationError{Field: "name", Reason: err.Error()}
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor.
//
// Business rules:
//   - Must not be only whitespace characters
//   - No control characters (Unicode category Cc)
//
// Surrounding spaces are kept: names are join keys and are matched exactly.
func ValidateName(name models.ItemName) error {
	s := name.String()

	if strings.TrimSpace(s) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be only whitespace"}
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return &domain.ValidationError{Field: "name", Reason: "must not contain control characters"}
		}
	}

	return nil
}

// ValidateItem performs cross-field validation on an Item before it is
// committed.
func ValidateItem(item *models.Item) error {
	if item == nil {
		return &domain.ValidationError{Field: "item", Reason: "must not be nil"}
	}

	if item.ID == uuid.Nil {
		return &domain.ValidationError{Field: "id", Reason: "must be set"}
	}

	if err := ValidateName(item.Name); err != nil {
		return err
	}

	if item.IsRoot && item.Location != "" {
		return &domain.ProtectedItemError{ItemID: item.ID, Reason: "root item cannot have a location"}
	}

	if !item.IsRoot && item.Location == "" {
		return &domain.ValidationError{Field: "location", Reason: "must not be empty"}
	}

	return nil
}
