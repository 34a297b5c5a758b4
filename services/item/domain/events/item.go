package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published after a catalog mutation commits.
const (
	TopicItemCreated   = "item.created"
	TopicItemUpdated   = "item.updated"
	TopicItemRelocated = "item.relocated"
	TopicItemDeleted   = "item.deleted"
)

// Topics lists every topic consumers may subscribe to.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemRelocated, TopicItemDeleted}

// Action names the mutation that produced an event.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionRelocated Action = "relocated"
	ActionDeleted   Action = "deleted"
)

// CurrentVersion is the schema version stamped on new events.
const CurrentVersion = 1

// ItemChangedEvent is published after a mutation is committed to the store.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated), etc.
type ItemChangedEvent struct {
	EventID          uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version          int       `json:"version"`  // Schema version; increment on breaking changes
	Action           Action    `json:"action"`
	ItemID           uuid.UUID `json:"item_id"`
	EditorID         uuid.UUID `json:"editor_id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	PreviousLocation string    `json:"previous_location,omitempty"`
	Warnings         []string  `json:"warnings,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Topic returns the topic the event is published on.
func (e ItemChangedEvent) Topic() string {
	switch e.Action {
	case ActionCreated:
		return TopicItemCreated
	case ActionRelocated:
		return TopicItemRelocated
	case ActionDeleted:
		return TopicItemDeleted
	default:
		return TopicItemUpdated
	}
}
