// Package eventsource provides an append-only event store with optimistic
// concurrency control, backed by memory or SQLite. Streams are totally
// ordered: versions start at 0 and an empty stream has version -1.
package eventsource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is one immutable record in a stream.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// Stream is the stream this event belongs to.
	Stream string `json:"stream"`

	// Type is the event type name.
	Type string `json:"type"`

	// Version is the event's position in its stream, assigned on append.
	Version int `json:"version"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent creates an event with a fresh ID and JSON-encoded payload.
// The version is assigned when the event is appended to a store.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("eventsource: encode payload: %w", err)
		}
		raw = b
	}
	return &Event{
		ID:        uuid.NewString(),
		Stream:    stream,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("eventsource: event %s has no payload", e.ID)
	}
	return json.Unmarshal(e.Data, v)
}
