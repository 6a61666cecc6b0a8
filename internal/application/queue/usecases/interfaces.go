package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
)

// TransactionManager runs a function inside a database transaction. The
// context passed to fn carries the transaction; repositories resolve it so
// every call inside fn shares the same connection and its row locks.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IssueTicketExecutor defines the contract for issuing tickets
type IssueTicketExecutor interface {
	Execute(ctx context.Context, cmd IssueTicketCommand) (*IssueTicketResult, error)
}

// CallNextExecutor defines the contract for calling the next waiting ticket
type CallNextExecutor interface {
	Execute(ctx context.Context, cmd CallNextCommand) (*CallNextResult, error)
}

// RecallTicketExecutor defines the contract for re-announcing a called ticket
type RecallTicketExecutor interface {
	Execute(ctx context.Context, cmd RecallTicketCommand) (*RecallTicketResult, error)
}

// StartServingExecutor defines the contract for starting service on a ticket
type StartServingExecutor interface {
	Execute(ctx context.Context, cmd StartServingCommand) (*dto.TicketDTO, error)
}

// HoldTicketExecutor defines the contract for parking a ticket
type HoldTicketExecutor interface {
	Execute(ctx context.Context, cmd HoldTicketCommand) (*dto.TicketDTO, error)
}

// ResumeTicketExecutor defines the contract for returning a held ticket to the queue
type ResumeTicketExecutor interface {
	Execute(ctx context.Context, cmd ResumeTicketCommand) (*dto.TicketDTO, error)
}

// CompleteTicketExecutor defines the contract for finishing service on a ticket
type CompleteTicketExecutor interface {
	Execute(ctx context.Context, cmd CompleteTicketCommand) (*dto.TicketDTO, error)
}

// CancelTicketExecutor defines the contract for voiding a ticket
type CancelTicketExecutor interface {
	Execute(ctx context.Context, cmd CancelTicketCommand) (*dto.TicketDTO, error)
}

// GetTicketExecutor defines the contract for fetching a ticket with its event trail
type GetTicketExecutor interface {
	Execute(ctx context.Context, ticketID uint) (*GetTicketResult, error)
}

// ListWaitingExecutor defines the contract for listing a counter's waiting tickets
type ListWaitingExecutor interface {
	Execute(ctx context.Context, counterID uint) ([]*dto.TicketDTO, error)
}

// QueueStatusExecutor defines the contract for the counter status snapshot
type QueueStatusExecutor interface {
	Execute(ctx context.Context, counterID uint, dateFor string) (*QueueStatusResult, error)
}
