package usecases

import (
	"context"
	"strings"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type HoldTicketCommand struct {
	TicketID uint
	ActorID  uint
	Reason   string
}

// HoldTicketUseCase parks a called or serving ticket, e.g. when the holder
// stepped away or paperwork is missing. A held ticket keeps its sequence and
// re-enters the queue through resume.
type HoldTicketUseCase struct {
	tickets   queue.TicketRepository
	events    queue.EventRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewHoldTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	txManager TransactionManager,
	log logger.Interface,
) *HoldTicketUseCase {
	return &HoldTicketUseCase{
		tickets:   tickets,
		events:    events,
		txManager: txManager,
		logger:    log,
	}
}

func (uc *HoldTicketUseCase) Execute(ctx context.Context, cmd HoldTicketCommand) (*dto.TicketDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		return nil, errors.NewValidationError("hold reason is required")
	}

	var held *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.Hold(reason); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		actorID := cmd.ActorID
		event, err := queue.NewTicketEvent(ticket.ID(), &actorID, queue.EventHeld, &reason)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		held = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	uc.logger.Infow("ticket held",
		"ticket_id", held.ID(),
		"queue_number", held.QueueNumber(),
		"reason", reason,
		"actor_id", cmd.ActorID,
	)

	return dto.FromTicket(held), nil
}
