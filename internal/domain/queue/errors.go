package queue

import (
	"fmt"
	"strings"

	vo "lineup/internal/domain/queue/valueobjects"
)

// TransitionError reports an operation invoked on a ticket whose current
// status is outside the operation's legal source set. It carries the
// attempted operation, the ticket's status at the time, and the allowed
// source statuses.
type TransitionError struct {
	Operation vo.Operation
	From      vo.Status
	Allowed   []vo.Status
}

func (e *TransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	return fmt.Sprintf("cannot %s ticket in status %s (allowed from: %s)",
		e.Operation, e.From, strings.Join(names, ", "))
}

// AllowedNames returns the allowed source statuses as strings.
func (e *TransitionError) AllowedNames() []string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	return names
}

func newTransitionError(op vo.Operation, from vo.Status) *TransitionError {
	return &TransitionError{
		Operation: op,
		From:      from,
		Allowed:   vo.AllowedSources(op),
	}
}
