package usecases

import (
	"context"

	"lineup/internal/application/queue/announce"
	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/biztime"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type RecallTicketCommand struct {
	TicketID uint
	ActorID  uint
}

type RecallTicketResult struct {
	Ticket  *dto.TicketDTO
	Message string
}

// RecallTicketUseCase re-announces a ticket that is already being called.
// Only the called timestamp moves; clients compare it to detect the re-call.
type RecallTicketUseCase struct {
	tickets    queue.TicketRepository
	events     queue.EventRepository
	counters   counter.CounterRepository
	txManager  TransactionManager
	dispatcher announce.Dispatcher
	logger     logger.Interface
}

func NewRecallTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	counters counter.CounterRepository,
	txManager TransactionManager,
	dispatcher announce.Dispatcher,
	log logger.Interface,
) *RecallTicketUseCase {
	if dispatcher == nil {
		dispatcher = announce.NopDispatcher{}
	}
	return &RecallTicketUseCase{
		tickets:    tickets,
		events:     events,
		counters:   counters,
		txManager:  txManager,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *RecallTicketUseCase) Execute(ctx context.Context, cmd RecallTicketCommand) (*RecallTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	var recalled *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := ticket.Recall(biztime.NowUTC()); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		actorID := cmd.ActorID
		note := "recall"
		event, err := queue.NewTicketEvent(ticket.ID(), &actorID, queue.EventCalled, &note)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		event.WithMetadata(map[string]interface{}{
			"queue_number": ticket.QueueNumber(),
		})
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		recalled = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "ticket")
	}

	counterName := ""
	if ctr, err := uc.counters.GetByID(ctx, recalled.CounterID()); err == nil {
		counterName = ctr.Name()
	}
	uc.dispatcher.Enqueue(announce.Announcement{
		Kind:        announce.KindRecalled,
		Priority:    announce.PriorityRecall,
		TicketID:    recalled.ID(),
		QueueNumber: recalled.QueueNumber(),
		CounterID:   recalled.CounterID(),
		CounterName: counterName,
	})

	uc.logger.Infow("ticket recalled",
		"ticket_id", recalled.ID(),
		"queue_number", recalled.QueueNumber(),
		"actor_id", cmd.ActorID,
	)

	return &RecallTicketResult{
		Ticket:  dto.FromTicket(recalled),
		Message: "recalling " + recalled.QueueNumber(),
	}, nil
}
