// Package announce defines the contract between the queue engine and the
// announcement dispatcher that tells waiting rooms which number is up. The
// engine enqueues after its transaction commits; delivery is fire-and-forget
// and never runs inside a database transaction.
package announce

// Kind labels what happened to the announced ticket.
type Kind string

const (
	KindCalled   Kind = "called"
	KindRecalled Kind = "recalled"
	KindInfo     Kind = "info"
)

// Priority orders announcements when the dispatcher is backlogged. A fresh
// call outranks a re-call, which outranks informational notices.
type Priority int

const (
	PriorityInfo Priority = iota
	PriorityRecall
	PriorityCall
)

// Compare returns a negative value when a ranks below b, zero when equal,
// positive when a ranks above b. The dispatcher drains higher priorities
// first.
func Compare(a, b Priority) int {
	return int(a) - int(b)
}

func (p Priority) String() string {
	switch p {
	case PriorityCall:
		return "call"
	case PriorityRecall:
		return "recall"
	default:
		return "info"
	}
}

// Announcement is one queue-change notice for display boards and speakers.
type Announcement struct {
	Kind        Kind
	Priority    Priority
	TicketID    uint
	QueueNumber string
	CounterID   uint
	CounterName string
}

// Dispatcher accepts announcements for asynchronous delivery. Enqueue must
// not block the caller; it reports false when the announcement was dropped
// because the dispatcher is stopped or saturated.
type Dispatcher interface {
	Enqueue(a Announcement) bool
}

// NopDispatcher discards every announcement. Used where no delivery target is
// configured.
type NopDispatcher struct{}

func (NopDispatcher) Enqueue(Announcement) bool { return true }
