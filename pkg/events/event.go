package events

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// BaseEvent is a ready-made Event carrying a ULID identity and the instant
// it was created. Embed it by value in concrete event types:
//
//	type OrderPlaced struct {
//		events.BaseEvent
//		OrderID string
//	}
//
//	evt := OrderPlaced{BaseEvent: events.NewBaseEvent(repo), OrderID: id}
type BaseEvent struct {
	id         ulid.ULID
	occurredAt time.Time
	source     any
}

// NewBaseEvent creates a BaseEvent originating from source.
// It panics if source is nil; every base event must name its origin.
func NewBaseEvent(source any) BaseEvent {
	if source == nil {
		panic("event source is required")
	}

	return BaseEvent{
		id:         ulid.MustNew(ulid.Now(), rand.Reader),
		occurredAt: time.Now().UTC(),
		source:     source,
	}
}

// ID returns the event identity assigned at construction.
func (e BaseEvent) ID() string { return e.id.String() }

// OccurredAt returns the instant the event was created.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Source returns the object on which the event initially occurred.
func (e BaseEvent) Source() any { return e.source }
