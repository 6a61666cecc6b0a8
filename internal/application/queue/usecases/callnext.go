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

type CallNextCommand struct {
	CounterID uint
	ActorID   uint
}

type CallNextResult struct {
	Ticket      *dto.TicketDTO
	QueueNumber string
	Message     string
}

// CallNextUseCase claims the earliest waiting ticket for a counter. Selection
// and the status update happen under one row lock, so two staff members
// calling simultaneously can never claim the same ticket. An empty queue is
// not an error: the result carries a nil ticket and a "nothing waiting"
// message.
type CallNextUseCase struct {
	tickets    queue.TicketRepository
	events     queue.EventRepository
	counters   counter.CounterRepository
	txManager  TransactionManager
	dispatcher announce.Dispatcher
	logger     logger.Interface
}

func NewCallNextUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	counters counter.CounterRepository,
	txManager TransactionManager,
	dispatcher announce.Dispatcher,
	log logger.Interface,
) *CallNextUseCase {
	if dispatcher == nil {
		dispatcher = announce.NopDispatcher{}
	}
	return &CallNextUseCase{
		tickets:    tickets,
		events:     events,
		counters:   counters,
		txManager:  txManager,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *CallNextUseCase) Execute(ctx context.Context, cmd CallNextCommand) (*CallNextResult, error) {
	if cmd.CounterID == 0 {
		return nil, errors.NewValidationError("counter ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}

	ctr, err := uc.counters.GetByID(ctx, cmd.CounterID)
	if err != nil {
		return nil, err
	}

	var called *queue.Ticket
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticket, err := uc.tickets.NextWaitingForUpdate(txCtx, cmd.CounterID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return nil
		}

		if err := ticket.Call(biztime.NowUTC()); err != nil {
			return mapDomainError(err)
		}
		if err := uc.tickets.Update(txCtx, ticket); err != nil {
			return err
		}

		actorID := cmd.ActorID
		event, err := queue.NewTicketEvent(ticket.ID(), &actorID, queue.EventCalled, nil)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		event.WithMetadata(map[string]interface{}{
			"queue_number": ticket.QueueNumber(),
			"counter_id":   ticket.CounterID(),
		})
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		called = ticket
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "waiting queue")
	}

	if called == nil {
		uc.logger.Debugw("call next on empty queue", "counter_id", cmd.CounterID)
		return &CallNextResult{Message: "no tickets waiting"}, nil
	}

	// Announce only after the transaction committed; the dispatcher does
	// external I/O and must never run under the row lock.
	uc.dispatcher.Enqueue(announce.Announcement{
		Kind:        announce.KindCalled,
		Priority:    announce.PriorityCall,
		TicketID:    called.ID(),
		QueueNumber: called.QueueNumber(),
		CounterID:   ctr.ID(),
		CounterName: ctr.Name(),
	})

	uc.logger.Infow("ticket called",
		"ticket_id", called.ID(),
		"queue_number", called.QueueNumber(),
		"counter_id", cmd.CounterID,
		"actor_id", cmd.ActorID,
	)

	return &CallNextResult{
		Ticket:      dto.FromTicket(called),
		QueueNumber: called.QueueNumber(),
		Message:     "now calling " + called.QueueNumber(),
	}, nil
}
