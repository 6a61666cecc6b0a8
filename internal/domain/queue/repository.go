package queue

import "context"

// TicketRepository is the persistence contract for tickets. The ForUpdate
// methods must be called inside a transaction; the row locks they take are
// held until that transaction ends.
type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)

	// GetByIDForUpdate loads a ticket and locks its row for the rest of the
	// transaction, so a concurrent operation on the same ticket serializes
	// behind this one.
	GetByIDForUpdate(ctx context.Context, ticketID uint) (*Ticket, error)

	// MaxSequenceForUpdate returns the highest sequence issued for a
	// counter+date (0 when none), locking the matching rows so no concurrent
	// issuance can read the same maximum. This lock is also the capacity
	// choke point: the caller counts and inserts under the same
	// serialization.
	MaxSequenceForUpdate(ctx context.Context, counterID uint, dateFor string) (int, error)

	// NextWaitingForUpdate selects the earliest waiting ticket for a counter
	// (creation time, then sequence) and locks it against concurrent
	// selection. Returns nil when the queue is empty.
	NextWaitingForUpdate(ctx context.Context, counterID uint) (*Ticket, error)

	// CountIssued counts every ticket issued for a counter+date regardless of
	// status; a cancelled ticket still consumed its capacity slot.
	CountIssued(ctx context.Context, counterID uint, dateFor string) (int64, error)

	// HasActiveTicket reports whether the holder has a non-terminal ticket at
	// the counter for the date.
	HasActiveTicket(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error)

	ListWaiting(ctx context.Context, counterID uint) ([]*Ticket, error)
}

// EventRepository is the append-only persistence contract for the ticket
// audit trail.
type EventRepository interface {
	Append(ctx context.Context, event *TicketEvent) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*TicketEvent, error)
}
