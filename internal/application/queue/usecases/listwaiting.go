package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

// ListWaitingUseCase lists the waiting tickets for a counter in call order.
type ListWaitingUseCase struct {
	tickets  queue.TicketRepository
	counters counter.CounterRepository
}

func NewListWaitingUseCase(tickets queue.TicketRepository, counters counter.CounterRepository) *ListWaitingUseCase {
	return &ListWaitingUseCase{tickets: tickets, counters: counters}
}

func (uc *ListWaitingUseCase) Execute(ctx context.Context, counterID uint) ([]*dto.TicketDTO, error) {
	if counterID == 0 {
		return nil, errors.NewValidationError("counter ID is required")
	}
	if _, err := uc.counters.GetByID(ctx, counterID); err != nil {
		return nil, err
	}

	tickets, err := uc.tickets.ListWaiting(ctx, counterID)
	if err != nil {
		return nil, err
	}
	return dto.FromTickets(tickets), nil
}
