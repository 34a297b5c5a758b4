package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one entry in the audit trail of catalog edits. It is derived
// from a change event and never feeds back into the catalog itself.
type Activity struct {
	EventID          uuid.UUID
	Action           string
	ItemID           uuid.UUID
	EditorID         uuid.UUID
	Name             string
	Location         string
	PreviousLocation string
	Warnings         []string
	OccurredAt       time.Time
	RecordedAt       time.Time
}
