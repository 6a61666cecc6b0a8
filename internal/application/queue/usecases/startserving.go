package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/biztime"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type StartServingCommand struct {
	TicketID uint
	ActorID  uint
}

// StartServingUseCase marks a called ticket as being served at the counter.
type StartServingUseCase struct {
	tickets   queue.TicketRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewStartServingUseCase(
	tickets queue.TicketRepository,
	txManager TransactionManager,
	log logger.Interface,
) *StartServingUseCase {
	return &StartServingUseCase{
		tickets:   tickets,
		txManager: txManager,
		logger:    log,
	}
}

func (uc *StartServingUseCase) Execute(ctx context.Context, cmd StartServingCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	var serving *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.StartServing(biztime.NowUTC()); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		serving = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	uc.logger.Infow("ticket serving",
		"ticket_id", serving.ID(),
		"queue_number", serving.QueueNumber(),
		"actor_id", cmd.ActorID,
	)

	return dto.FromTicket(serving), nil
}
