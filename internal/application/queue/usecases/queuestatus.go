package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/biztime"
	"lineup/internal/shared/errors"
)

type QueueStatusResult struct {
	Capacity *dto.CapacityDTO
	Waiting  int
	Open     bool
}

// QueueStatusUseCase reports a counter's remaining daily capacity and queue
// depth for the display boards. Reads are unlocked, so the snapshot can be a
// moment stale under concurrent issuance.
type QueueStatusUseCase struct {
	tickets  queue.TicketRepository
	counters counter.CounterRepository
}

func NewQueueStatusUseCase(tickets queue.TicketRepository, counters counter.CounterRepository) *QueueStatusUseCase {
	return &QueueStatusUseCase{tickets: tickets, counters: counters}
}

func (uc *QueueStatusUseCase) Execute(ctx context.Context, counterID uint, dateFor string) (*QueueStatusResult, error) {
	if counterID == 0 {
		return nil, errors.NewValidationError("counter ID is required")
	}
	if dateFor == "" {
		dateFor = biztime.Today()
	} else {
		parsed, err := biztime.ParseServiceDate(dateFor)
		if err != nil {
			return nil, errors.NewValidationError("date must be in YYYY-MM-DD format")
		}
		dateFor = parsed
	}

	ctr, err := uc.counters.GetByID(ctx, counterID)
	if err != nil {
		return nil, err
	}

	issued, err := uc.tickets.CountIssued(ctx, counterID, dateFor)
	if err != nil {
		return nil, err
	}
	waiting, err := uc.tickets.ListWaiting(ctx, counterID)
	if err != nil {
		return nil, err
	}

	available := ctr.CapacityPerDay() - int(issued)
	if available < 0 {
		available = 0
	}

	return &QueueStatusResult{
		Capacity: &dto.CapacityDTO{
			CounterID:  counterID,
			DateFor:    dateFor,
			Capacity:   ctr.CapacityPerDay(),
			Issued:     int(issued),
			Available:  available,
			AtCapacity: int(issued) >= ctr.CapacityPerDay(),
		},
		Waiting: len(waiting),
		Open:    ctr.IsActive() && ctr.IsOpenAt(biztime.MinuteOfDay(biztime.NowUTC())),
	}, nil
}
