package queue

import (
	"fmt"
	"time"
)

// EventType labels a ticket lifecycle event.
type EventType string

const (
	EventIssued    EventType = "issued"
	EventCalled    EventType = "called"
	EventHeld      EventType = "held"
	EventResumed   EventType = "resumed"
	EventDone      EventType = "done"
	EventCancelled EventType = "cancelled"
)

var validEventTypes = map[EventType]bool{
	EventIssued:    true,
	EventCalled:    true,
	EventHeld:      true,
	EventResumed:   true,
	EventDone:      true,
	EventCancelled: true,
}

func (e EventType) IsValid() bool {
	return validEventTypes[e]
}

func (e EventType) String() string {
	return string(e)
}

// TicketEvent is one immutable entry in a ticket's audit trail. Exactly one
// is appended per successful state-changing operation, inside that
// operation's transaction. Events are never updated or deleted.
type TicketEvent struct {
	id        uint
	ticketID  uint
	actorID   *uint
	eventType EventType
	note      *string
	metadata  map[string]interface{}
	createdAt time.Time
}

func NewTicketEvent(ticketID uint, actorID *uint, eventType EventType, note *string) (*TicketEvent, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}

	return &TicketEvent{
		ticketID:  ticketID,
		actorID:   actorID,
		eventType: eventType,
		note:      note,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructTicketEvent(
	id uint,
	ticketID uint,
	actorID *uint,
	eventType EventType,
	note *string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*TicketEvent, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}

	return &TicketEvent{
		id:        id,
		ticketID:  ticketID,
		actorID:   actorID,
		eventType: eventType,
		note:      note,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (e *TicketEvent) ID() uint {
	return e.id
}

func (e *TicketEvent) TicketID() uint {
	return e.ticketID
}

func (e *TicketEvent) ActorID() *uint {
	return e.actorID
}

func (e *TicketEvent) Type() EventType {
	return e.eventType
}

func (e *TicketEvent) Note() *string {
	return e.note
}

func (e *TicketEvent) Metadata() map[string]interface{} {
	if e.metadata == nil {
		return nil
	}
	out := make(map[string]interface{}, len(e.metadata))
	for k, v := range e.metadata {
		out[k] = v
	}
	return out
}

func (e *TicketEvent) CreatedAt() time.Time {
	return e.createdAt
}

func (e *TicketEvent) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}

// WithMetadata attaches structured context recorded alongside the event,
// such as the queue number at call time.
func (e *TicketEvent) WithMetadata(metadata map[string]interface{}) *TicketEvent {
	e.metadata = metadata
	return e
}
