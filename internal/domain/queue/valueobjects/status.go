package valueobjects

import "fmt"

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCalling   Status = "calling"
	StatusServing   Status = "serving"
	StatusHold      Status = "hold"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusWaiting:   true,
	StatusCalling:   true,
	StatusServing:   true,
	StatusHold:      true,
	StatusDone:      true,
	StatusCancelled: true,
}

// Operation names the queue actions that move a ticket between statuses.
type Operation string

const (
	OpIssue        Operation = "issue"
	OpCallNext     Operation = "call_next"
	OpRecall       Operation = "recall"
	OpStartServing Operation = "start_serving"
	OpHold         Operation = "hold"
	OpResume       Operation = "resume"
	OpDone         Operation = "done"
	OpCancel       Operation = "cancel"
)

// operationSources lists, per operation, the statuses a ticket must currently
// be in for that operation to apply. This table is the sole transition-validity
// mechanism; there is no implicit coercion.
var operationSources = map[Operation][]Status{
	OpCallNext:     {StatusWaiting},
	OpRecall:       {StatusCalling},
	OpStartServing: {StatusCalling},
	OpHold:         {StatusWaiting, StatusCalling, StatusServing},
	OpResume:       {StatusHold},
	OpDone:         {StatusCalling, StatusServing},
	OpCancel:       {StatusWaiting, StatusCalling, StatusServing, StatusHold},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal reports whether the status is final. No operation ever moves a
// ticket out of a terminal status.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

func (s Status) IsWaiting() bool {
	return s == StatusWaiting
}

func (s Status) IsCalling() bool {
	return s == StatusCalling
}

func (s Status) IsServing() bool {
	return s == StatusServing
}

func (s Status) IsHold() bool {
	return s == StatusHold
}

// AllowedSources returns the legal source statuses for an operation.
func AllowedSources(op Operation) []Status {
	sources, ok := operationSources[op]
	if !ok {
		return nil
	}
	out := make([]Status, len(sources))
	copy(out, sources)
	return out
}

// CanApply reports whether op may be invoked on a ticket currently in from.
func CanApply(op Operation, from Status) bool {
	for _, allowed := range operationSources[op] {
		if allowed == from {
			return true
		}
	}
	return false
}

func (op Operation) String() string {
	return string(op)
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
