package usecases

import (
	"context"

	"lineup/internal/application/queue/dto"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/shared/biztime"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type IssueTicketCommand struct {
	LocationID uint
	CounterID  uint
	HolderID   *uint
	// DateFor is the YYYY-MM-DD service date; empty means today in the
	// business timezone.
	DateFor string
}

type IssueTicketResult struct {
	Ticket  *dto.TicketDTO
	Message string
}

// IssueTicketUseCase creates a ticket at the tail of a counter's queue. The
// whole operation runs in one transaction: the per-counter+date sequence lock
// is acquired first, and the capacity count, duplicate-holder check, and
// insert all happen under it, so no two concurrent issuances can agree on the
// same sequence or both squeeze past the capacity limit.
type IssueTicketUseCase struct {
	tickets   queue.TicketRepository
	events    queue.EventRepository
	counters  counter.CounterRepository
	locations counter.LocationRepository
	txManager TransactionManager
	numberPad int
	logger    logger.Interface
}

func NewIssueTicketUseCase(
	tickets queue.TicketRepository,
	events queue.EventRepository,
	counters counter.CounterRepository,
	locations counter.LocationRepository,
	txManager TransactionManager,
	numberPad int,
	log logger.Interface,
) *IssueTicketUseCase {
	if numberPad <= 0 {
		numberPad = vo.DefaultNumberPad
	}
	return &IssueTicketUseCase{
		tickets:   tickets,
		events:    events,
		counters:  counters,
		locations: locations,
		txManager: txManager,
		numberPad: numberPad,
		logger:    log,
	}
}

func (uc *IssueTicketUseCase) Execute(ctx context.Context, cmd IssueTicketCommand) (*IssueTicketResult, error) {
	if err := uc.validateCommand(&cmd); err != nil {
		return nil, err
	}

	var issued *queue.Ticket
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ctr, err := uc.checkCounterOpen(txCtx, cmd)
		if err != nil {
			return err
		}

		// Serialization point: every concurrent issuance for this
		// counter+date queues up behind this lock until commit.
		maxSeq, err := uc.tickets.MaxSequenceForUpdate(txCtx, cmd.CounterID, cmd.DateFor)
		if err != nil {
			return err
		}

		issuedCount, err := uc.tickets.CountIssued(txCtx, cmd.CounterID, cmd.DateFor)
		if err != nil {
			return err
		}
		if issuedCount >= int64(ctr.CapacityPerDay()) {
			return errors.NewCapacityError(ctr.Name(), ctr.CapacityPerDay())
		}

		if cmd.HolderID != nil {
			active, err := uc.tickets.HasActiveTicket(txCtx, *cmd.HolderID, cmd.CounterID, cmd.DateFor)
			if err != nil {
				return err
			}
			if active {
				return errors.NewDuplicateTicketError(ctr.Name())
			}
		}

		ticket, err := queue.NewTicket(cmd.LocationID, cmd.CounterID, cmd.HolderID, cmd.DateFor)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		sequence := maxSeq + 1
		number := vo.FormatQueueNumber(ctr.Prefix(), sequence, uc.numberPad)
		if err := ticket.AssignSequence(sequence, number); err != nil {
			return errors.NewInternalError(err.Error())
		}

		if err := uc.tickets.Save(txCtx, ticket); err != nil {
			if errors.IsUniqueViolation(err) {
				// Should be unreachable while the sequence lock holds; kept
				// as a backstop so a constraint race surfaces as retryable.
				return errors.NewConflictError("ticket number collision, please retry")
			}
			return err
		}

		event, err := queue.NewTicketEvent(ticket.ID(), cmd.HolderID, queue.EventIssued, nil)
		if err != nil {
			return errors.NewInternalError(err.Error())
		}
		event.WithMetadata(map[string]interface{}{
			"queue_number": ticket.QueueNumber(),
			"sequence":     ticket.Sequence(),
		})
		if err := uc.events.Append(txCtx, event); err != nil {
			return err
		}

		issued = ticket
		return nil
	})
	if err != nil {
		err = translateStoreError(err, "ticket sequence")
		uc.logger.Warnw("ticket issuance failed",
			"counter_id", cmd.CounterID,
			"date_for", cmd.DateFor,
			"error", err,
		)
		return nil, err
	}

	uc.logger.Infow("ticket issued",
		"ticket_id", issued.ID(),
		"queue_number", issued.QueueNumber(),
		"counter_id", cmd.CounterID,
		"date_for", cmd.DateFor,
	)

	return &IssueTicketResult{
		Ticket:  dto.FromTicket(issued),
		Message: "ticket " + issued.QueueNumber() + " issued",
	}, nil
}

func (uc *IssueTicketUseCase) validateCommand(cmd *IssueTicketCommand) error {
	if cmd.LocationID == 0 {
		return errors.NewValidationError("location ID is required")
	}
	if cmd.CounterID == 0 {
		return errors.NewValidationError("counter ID is required")
	}
	if cmd.HolderID != nil && *cmd.HolderID == 0 {
		return errors.NewValidationError("holder ID cannot be zero")
	}

	if cmd.DateFor == "" {
		cmd.DateFor = biztime.Today()
		return nil
	}
	canonical, err := biztime.ParseServiceDate(cmd.DateFor)
	if err != nil {
		return errors.NewValidationError("invalid service date", err.Error())
	}
	cmd.DateFor = canonical
	return nil
}

func (uc *IssueTicketUseCase) checkCounterOpen(ctx context.Context, cmd IssueTicketCommand) (*counter.Counter, error) {
	loc, err := uc.locations.GetByID(ctx, cmd.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.IsActive() {
		return nil, errors.NewLocationClosedError(loc.Name())
	}

	ctr, err := uc.counters.GetByID(ctx, cmd.CounterID)
	if err != nil {
		return nil, err
	}
	if ctr.LocationID() != cmd.LocationID {
		return nil, errors.NewValidationError("counter does not belong to the location")
	}
	if !ctr.IsActive() {
		return nil, errors.NewCounterClosedError(ctr.Name(), "counter is inactive")
	}
	if !ctr.IsOpenAt(biztime.MinuteOfDay(biztime.NowUTC())) {
		return nil, errors.NewCounterClosedError(ctr.Name(), "outside open hours")
	}
	return ctr, nil
}
