package models

import (
	"fmt"
	"unicode/utf8"
)

// ItemName is the display label of an item and the key other items put in
// their Location. Comparison is exact: case and surrounding whitespace count.
type ItemName string

const maxItemNameLength = 255

// NewItemName accepts 1 to 255 runes. Blank names pass here and are
// rejected by the domain validator.
func NewItemName(s string) (ItemName, error) {
	if s == "" {
		return "", fmt.Errorf("item name must not be empty")
	}
	if n := utf8.RuneCountInString(s); n > maxItemNameLength {
		return "", fmt.Errorf("item name must not exceed %d characters (got %d)", maxItemNameLength, n)
	}
	return ItemName(s), nil
}

// Names reports whether a Location value refers to an item called n.
func (n ItemName) Names(location string) bool {
	return location != "" && string(n) == location
}

func (n ItemName) String() string {
	return string(n)
}
