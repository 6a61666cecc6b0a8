package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/biztime"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type CompleteTicketCommand struct {
	TicketID uint
	ActorID  uint
}

// CompleteTicketUseCase finishes service for a ticket. Completion is terminal.
type CompleteTicketUseCase struct {
	tickets   queue.TicketRepository
	events    queue.EventRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewCompleteTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	txManager TransactionManager,
	log logger.Interface,
) *CompleteTicketUseCase {
	return &CompleteTicketUseCase{
		tickets:   tickets,
		events:    events,
		txManager: txManager,
		logger:    log,
	}
}

func (uc *CompleteTicketUseCase) Execute(ctx context.Context, cmd CompleteTicketCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	var completed *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.Complete(biztime.NowUTC()); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		actorID := cmd.ActorID
		event, err := queue.NewTicketEvent(ticket.ID(), &actorID, queue.EventDone, nil)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		completed = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	uc.logger.Infow("ticket done",
		"ticket_id", completed.ID(),
		"queue_number", completed.QueueNumber(),
		"actor_id", cmd.ActorID,
	)

	return dto.FromTicket(completed), nil
}
