package domain

import "fmt"

// WarningCode identifies a non-fatal condition reported alongside a
// successful mutation. The store accepts the write; callers decide whether
// to surface it.
type WarningCode string

const (
	// WarningDanglingLocation: the location names no existing item, so the
	// item is unparented in the derived hierarchy.
	WarningDanglingLocation WarningCode = "dangling_location"

	// WarningLocationCycle: the item now appears among its own ancestors.
	WarningLocationCycle WarningCode = "location_cycle"

	// WarningOrphanedChildren: a rename or delete removed the last item
	// carrying a name that other items still use as their location.
	WarningOrphanedChildren WarningCode = "orphaned_children"
)

// Warning is a non-fatal observation about a committed mutation.
type Warning struct {
	Code    WarningCode
	Message string
}

// DanglingLocation reports a location that matches no item name.
func DanglingLocation(location string) Warning {
	return Warning{
		Code:    WarningDanglingLocation,
		Message: fmt.Sprintf("location %q matches no existing item", location),
	}
}

// LocationCycle reports that placing name under location closes a loop.
func LocationCycle(name, location string) Warning {
	return Warning{
		Code:    WarningLocationCycle,
		Message: fmt.Sprintf("placing %q in %q creates a location cycle", name, location),
	}
}

// OrphanedChildren reports items left without a parent after name disappeared.
func OrphanedChildren(name string, count int) Warning {
	return Warning{
		Code:    WarningOrphanedChildren,
		Message: fmt.Sprintf("%d item(s) located in %q no longer have a parent", count, name),
	}
}
