package dto

import (
	"time"

	"lineup/internal/domain/queue"
)

// TicketDTO is the flat ticket snapshot returned by every engine operation.
type TicketDTO struct {
	ID          uint       `json:"id"`
	LocationID  uint       `json:"location_id"`
	CounterID   uint       `json:"counter_id"`
	HolderID    *uint      `json:"holder_id,omitempty"`
	DateFor     string     `json:"date_for"`
	Sequence    int        `json:"sequence"`
	QueueNumber string     `json:"queue_number"`
	Status      string     `json:"status"`
	HoldReason  *string    `json:"hold_reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CalledAt    *time.Time `json:"called_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

func FromTicket(t *queue.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:          t.ID(),
		LocationID:  t.LocationID(),
		CounterID:   t.CounterID(),
		HolderID:    t.HolderID(),
		DateFor:     t.DateFor(),
		Sequence:    t.Sequence(),
		QueueNumber: t.QueueNumber(),
		Status:      t.Status().String(),
		HoldReason:  t.HoldReason(),
		CreatedAt:   t.CreatedAt(),
		CalledAt:    t.CalledAt(),
		StartedAt:   t.StartedAt(),
		FinishedAt:  t.FinishedAt(),
	}
}

func FromTickets(tickets []*queue.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, len(tickets))
	for i, t := range tickets {
		out[i] = FromTicket(t)
	}
	return out
}

// TicketEventDTO is one audit-trail entry.
type TicketEventDTO struct {
	ID        uint                   `json:"id"`
	TicketID  uint                   `json:"ticket_id"`
	ActorID   *uint                  `json:"actor_id,omitempty"`
	Type      string                 `json:"type"`
	Note      *string                `json:"note,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func FromEvent(e *queue.TicketEvent) *TicketEventDTO {
	if e == nil {
		return nil
	}
	return &TicketEventDTO{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		ActorID:   e.ActorID(),
		Type:      e.Type().String(),
		Note:      e.Note(),
		Metadata:  e.Metadata(),
		CreatedAt: e.CreatedAt(),
	}
}

func FromEvents(events []*queue.TicketEvent) []*TicketEventDTO {
	out := make([]*TicketEventDTO, len(events))
	for i, e := range events {
		out[i] = FromEvent(e)
	}
	return out
}

// CapacityDTO reports how much of a counter's daily allowance is consumed.
// Every issued ticket counts against capacity, terminal or not.
type CapacityDTO struct {
	CounterID  uint   `json:"counter_id"`
	DateFor    string `json:"date_for"`
	Capacity   int    `json:"capacity"`
	Issued     int    `json:"issued"`
	Available  int    `json:"available"`
	AtCapacity bool   `json:"at_capacity"`
}
