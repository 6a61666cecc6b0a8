package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

type GetTicketResult struct {
	Ticket *dto.TicketDTO
	Events []*dto.TicketEventDTO
}

// GetTicketUseCase reads a ticket together with its audit trail.
type GetTicketUseCase struct {
	tickets queue.TicketRepository
	events  queue.EventRepository
}

func NewGetTicketUseCase(tickets queue.TicketRepository, events queue.EventRepository) *GetTicketUseCase {
	return &GetTicketUseCase{tickets: tickets, events: events}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, ticketID uint) (*GetTicketResult, error) {
	if ticketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticket, err := uc.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	events, err := uc.events.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	return &GetTicketResult{
		Ticket: dto.FromTicket(ticket),
		Events: dto.FromEvents(events),
	}, nil
}
