package queue

import (
	"fmt"
	"time"

	vo "lineup/internal/domain/queue/valueobjects"
)

// Ticket is a visitor's place in a counter's queue for one service date.
// Its sequence number is dense per counter+date (1..N, no gaps, no reuse) and
// its queue number is the globally unique human-facing label derived from the
// counter prefix and the sequence.
type Ticket struct {
	id          uint
	locationID  uint
	counterID   uint
	holderID    *uint
	dateFor     string
	sequence    int
	queueNumber string
	status      vo.Status
	holdReason  *string
	createdAt   time.Time
	calledAt    *time.Time
	startedAt   *time.Time
	finishedAt  *time.Time
}

// NewTicket creates a waiting ticket. Sequence and queue number are assigned
// separately by the issuance transaction once the per-counter lock is held.
func NewTicket(locationID, counterID uint, holderID *uint, dateFor string) (*Ticket, error) {
	if locationID == 0 {
		return nil, fmt.Errorf("location ID is required")
	}
	if counterID == 0 {
		return nil, fmt.Errorf("counter ID is required")
	}
	if holderID != nil && *holderID == 0 {
		return nil, fmt.Errorf("holder ID cannot be zero")
	}
	if dateFor == "" {
		return nil, fmt.Errorf("service date is required")
	}

	return &Ticket{
		locationID: locationID,
		counterID:  counterID,
		holderID:   holderID,
		dateFor:    dateFor,
		status:     vo.StatusWaiting,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructTicket(
	id uint,
	locationID uint,
	counterID uint,
	holderID *uint,
	dateFor string,
	sequence int,
	queueNumber string,
	status vo.Status,
	holdReason *string,
	createdAt time.Time,
	calledAt, startedAt, finishedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if sequence <= 0 {
		return nil, fmt.Errorf("sequence must be positive")
	}
	if queueNumber == "" {
		return nil, fmt.Errorf("queue number is required")
	}

	return &Ticket{
		id:          id,
		locationID:  locationID,
		counterID:   counterID,
		holderID:    holderID,
		dateFor:     dateFor,
		sequence:    sequence,
		queueNumber: queueNumber,
		status:      status,
		holdReason:  holdReason,
		createdAt:   createdAt,
		calledAt:    calledAt,
		startedAt:   startedAt,
		finishedAt:  finishedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) LocationID() uint {
	return t.locationID
}

func (t *Ticket) CounterID() uint {
	return t.counterID
}

func (t *Ticket) HolderID() *uint {
	return t.holderID
}

func (t *Ticket) DateFor() string {
	return t.dateFor
}

func (t *Ticket) Sequence() int {
	return t.sequence
}

func (t *Ticket) QueueNumber() string {
	return t.queueNumber
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) HoldReason() *string {
	return t.holdReason
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) CalledAt() *time.Time {
	return t.calledAt
}

func (t *Ticket) StartedAt() *time.Time {
	return t.startedAt
}

func (t *Ticket) FinishedAt() *time.Time {
	return t.finishedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AssignSequence binds the locked sequence number and its rendered queue
// number to a ticket that has not been persisted yet.
func (t *Ticket) AssignSequence(sequence int, queueNumber string) error {
	if t.sequence != 0 {
		return fmt.Errorf("sequence is already assigned")
	}
	if sequence <= 0 {
		return fmt.Errorf("sequence must be positive")
	}
	if queueNumber == "" {
		return fmt.Errorf("queue number cannot be empty")
	}
	t.sequence = sequence
	t.queueNumber = queueNumber
	return nil
}

// Call moves a waiting ticket to calling. Both the called and started
// timestamps are stamped here; StartServing refreshes started when the
// visitor actually reaches the counter.
func (t *Ticket) Call(now time.Time) error {
	if !vo.CanApply(vo.OpCallNext, t.status) {
		return newTransitionError(vo.OpCallNext, t.status)
	}
	t.status = vo.StatusCalling
	t.calledAt = &now
	t.startedAt = &now
	return nil
}

// Recall refreshes the called timestamp of a ticket already being called, so
// clients can distinguish a re-call from unchanged state.
func (t *Ticket) Recall(now time.Time) error {
	if !vo.CanApply(vo.OpRecall, t.status) {
		return newTransitionError(vo.OpRecall, t.status)
	}
	t.calledAt = &now
	return nil
}

// StartServing moves a called ticket to serving.
func (t *Ticket) StartServing(now time.Time) error {
	if !vo.CanApply(vo.OpStartServing, t.status) {
		return newTransitionError(vo.OpStartServing, t.status)
	}
	t.status = vo.StatusServing
	t.startedAt = &now
	return nil
}

// Hold parks a waiting, calling, or serving ticket.
func (t *Ticket) Hold(reason string) error {
	if !vo.CanApply(vo.OpHold, t.status) {
		return newTransitionError(vo.OpHold, t.status)
	}
	if reason == "" {
		return fmt.Errorf("hold reason is required")
	}
	t.status = vo.StatusHold
	t.holdReason = &reason
	return nil
}

// Resume returns a held ticket to the waiting pool. Call and serve timestamps
// are cleared so it queues as if freshly issued, but it keeps its original
// sequence and queue number.
func (t *Ticket) Resume() error {
	if !vo.CanApply(vo.OpResume, t.status) {
		return newTransitionError(vo.OpResume, t.status)
	}
	t.status = vo.StatusWaiting
	t.holdReason = nil
	t.calledAt = nil
	t.startedAt = nil
	return nil
}

// Complete finishes a called or serving ticket.
func (t *Ticket) Complete(now time.Time) error {
	if !vo.CanApply(vo.OpDone, t.status) {
		return newTransitionError(vo.OpDone, t.status)
	}
	t.status = vo.StatusDone
	t.finishedAt = &now
	return nil
}

// Cancel voids any non-terminal ticket. The reason is stored in the hold
// reason field.
func (t *Ticket) Cancel(reason string) error {
	if !vo.CanApply(vo.OpCancel, t.status) {
		return newTransitionError(vo.OpCancel, t.status)
	}
	t.status = vo.StatusCancelled
	if reason != "" {
		t.holdReason = &reason
	}
	return nil
}

// IsActive reports whether the ticket still occupies the holder's slot at its
// counter, i.e. it has not reached a terminal status.
func (t *Ticket) IsActive() bool {
	return !t.status.IsTerminal()
}
