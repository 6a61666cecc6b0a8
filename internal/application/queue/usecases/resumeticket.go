package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type ResumeTicketCommand struct {
	TicketID uint
	ActorID  uint
}

// ResumeTicketUseCase returns a held ticket to the waiting pool. The ticket
// keeps its original sequence, so it sorts ahead of later arrivals when the
// counter calls next.
type ResumeTicketUseCase struct {
	tickets   queue.TicketRepository
	events    queue.EventRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewResumeTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	txManager TransactionManager,
	log logger.Interface,
) *ResumeTicketUseCase {
	return &ResumeTicketUseCase{
		tickets:   tickets,
		events:    events,
		txManager: txManager,
		logger:    log,
	}
}

func (uc *ResumeTicketUseCase) Execute(ctx context.Context, cmd ResumeTicketCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	var resumed *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.Resume(); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		actorID := cmd.ActorID
		event, err := queue.NewTicketEvent(ticket.ID(), &actorID, queue.EventResumed, nil)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		resumed = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	uc.logger.Infow("ticket resumed",
		"ticket_id", resumed.ID(),
		"queue_number", resumed.QueueNumber(),
		"actor_id", cmd.ActorID,
	)

	return dto.FromTicket(resumed), nil
}
