// Package messaging maps catalog change events onto the Watermill event bus.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stowage/services/item/domain/events"
)

// Metadata keys set on every published message.
const (
	MetadataEventVersion = "event_version"
	MetadataAction       = "action"
)

// Bus is the publishing half of events.EventBus.
type Bus interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Publisher publishes ItemChangedEvent as JSON on the event's topic.
type Publisher struct {
	bus Bus
}

// NewPublisher returns a Publisher writing to bus.
func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus}
}

// PublishItemChanged encodes evt and publishes it. The event id doubles as
// the Watermill message UUID so consumers can deduplicate redeliveries.
func (p *Publisher) PublishItemChanged(ctx context.Context, evt events.ItemChangedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Action, err)
	}
	msg := message.NewMessage(evt.EventID.String(), payload)
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(evt.Version))
	msg.Metadata.Set(MetadataAction, string(evt.Action))

	if err := p.bus.Publish(ctx, evt.Topic(), msg); err != nil {
		return fmt.Errorf("publish %s event: %w", evt.Action, err)
	}
	return nil
}

// DecodeItemChanged parses a message produced by PublishItemChanged.
// Events newer than events.CurrentVersion are rejected.
func DecodeItemChanged(msg *message.Message) (events.ItemChangedEvent, error) {
	var evt events.ItemChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode item event %s: %w", msg.UUID, err)
	}
	if evt.Version > events.CurrentVersion {
		return evt, fmt.Errorf("decode item event %s: unsupported version %d", msg.UUID, evt.Version)
	}
	return evt, nil
}
