package usecases

import (
	"context"
	"strings"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type CancelTicketCommand struct {
	TicketID uint
	// ActorID is nil when the holder cancels their own ticket.
	ActorID *uint
	Reason  string
}

// CancelTicketUseCase voids a ticket from any non-terminal state.
type CancelTicketUseCase struct {
	tickets   queue.TicketRepository
	events    queue.EventRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewCancelTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	txManager TransactionManager,
	log logger.Interface,
) *CancelTicketUseCase {
	return &CancelTicketUseCase{
		tickets:   tickets,
		events:    events,
		txManager: txManager,
		logger:    log,
	}
}

func (uc *CancelTicketUseCase) Execute(ctx context.Context, cmd CancelTicketCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	reason := strings.TrimSpace(cmd.Reason)
	var cancelled *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.Cancel(reason); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		var note *string
		if reason != "" {
			note = &reason
		}
		event, err := queue.NewTicketEvent(ticket.ID(), cmd.ActorID, queue.EventCancelled, note)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		cancelled = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	uc.logger.Infow("ticket cancelled",
		"ticket_id", cancelled.ID(),
		"queue_number", cancelled.QueueNumber(),
		"reason", reason,
	)

	return dto.FromTicket(cancelled), nil
}
