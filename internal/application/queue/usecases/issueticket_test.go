package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/shared/errors"
)

func newIssueFixture(ctr *counter.Counter, loc *counter.Location) (*IssueTicketUseCase, *mockTicketRepository, *mockEventRepository) {
	tickets := &mockTicketRepository{}
	events := &mockEventRepository{}
	counters := &mockCounterRepository{
		getByIDFunc: func(ctx context.Context, counterID uint) (*counter.Counter, error) {
			if ctr == nil || counterID != ctr.ID() {
				return nil, errors.NewNotFoundError("counter")
			}
			return ctr, nil
		},
	}
	locations := &mockLocationRepository{
		getByIDFunc: func(ctx context.Context, locationID uint) (*counter.Location, error) {
			if loc == nil || locationID != loc.ID() {
				return nil, errors.NewNotFoundError("location")
			}
			return loc, nil
		},
	}
	uc := NewIssueTicketUseCase(tickets, events, counters, locations, &mockTxManager{}, 3, &mockLogger{})
	return uc, tickets, events
}

func TestIssueTicketUseCase_Execute(t *testing.T) {
	ctr := testCounter(1, "A", 50)
	loc := testLocation(1, true)

	t.Run("issues sequential numbers under the sequence lock", func(t *testing.T) {
		uc, tickets, events := newIssueFixture(ctr, loc)

		maxSeq := 0
		var issuedCount int64
		nextID := uint(0)
		tickets.maxSequenceForUpdateFunc = func(ctx context.Context, counterID uint, dateFor string) (int, error) {
			return maxSeq, nil
		}
		tickets.countIssuedFunc = func(ctx context.Context, counterID uint, dateFor string) (int64, error) {
			return issuedCount, nil
		}
		tickets.saveFunc = func(ctx context.Context, tk *queue.Ticket) error {
			maxSeq = tk.Sequence()
			issuedCount++
			nextID++
			return tk.SetID(nextID)
		}

		want := []string{"A001", "A002", "A003"}
		for i, number := range want {
			result, err := uc.Execute(context.Background(), IssueTicketCommand{
				LocationID: 1,
				CounterID:  1,
				DateFor:    "2026-08-29",
			})
			require.NoError(t, err)
			assert.Equal(t, number, result.Ticket.QueueNumber)
			assert.Equal(t, i+1, result.Ticket.Sequence)
			assert.Equal(t, string(vo.StatusWaiting), result.Ticket.Status)
		}
		assert.Len(t, events.appended, 3)
		assert.Equal(t, queue.EventIssued, events.appended[0].Type())
	})

	t.Run("rejects issuance at capacity", func(t *testing.T) {
		small := testCounter(1, "A", 3)
		uc, tickets, _ := newIssueFixture(small, loc)
		tickets.countIssuedFunc = func(ctx context.Context, counterID uint, dateFor string) (int64, error) {
			return 3, nil
		}

		_, err := uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeCapacityExhausted, appErr.Type)
	})

	t.Run("counts cancelled tickets against capacity", func(t *testing.T) {
		small := testCounter(1, "A", 5)
		uc, tickets, _ := newIssueFixture(small, loc)
		// 5 issued, 2 of them cancelled; CountIssued still reports 5.
		tickets.countIssuedFunc = func(ctx context.Context, counterID uint, dateFor string) (int64, error) {
			return 5, nil
		}

		_, err := uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeCapacityExhausted, errors.GetAppError(err).Type)
	})

	t.Run("rejects duplicate active ticket for the holder", func(t *testing.T) {
		uc, tickets, _ := newIssueFixture(ctr, loc)
		tickets.hasActiveTicketFunc = func(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error) {
			return true, nil
		}

		holderID := uint(7)
		_, err := uc.Execute(context.Background(), IssueTicketCommand{
			LocationID: 1,
			CounterID:  1,
			HolderID:   &holderID,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeDuplicateTicket, errors.GetAppError(err).Type)
	})

	t.Run("allows a new ticket once the previous one is terminal", func(t *testing.T) {
		uc, tickets, _ := newIssueFixture(ctr, loc)
		tickets.hasActiveTicketFunc = func(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error) {
			return false, nil
		}

		holderID := uint(7)
		result, err := uc.Execute(context.Background(), IssueTicketCommand{
			LocationID: 1,
			CounterID:  1,
			HolderID:   &holderID,
		})
		require.NoError(t, err)
		assert.Equal(t, "A001", result.Ticket.QueueNumber)
	})

	t.Run("rejects inactive location", func(t *testing.T) {
		uc, _, _ := newIssueFixture(ctr, testLocation(1, false))

		_, err := uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeLocationClosed, errors.GetAppError(err).Type)
	})

	t.Run("rejects inactive counter", func(t *testing.T) {
		closed, err := counter.ReconstructCounter(1, 1, "Counter A", "A", "00:00", "00:00", 50, false)
		require.NoError(t, err)
		uc, _, _ := newIssueFixture(closed, loc)

		_, err = uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeCounterClosed, errors.GetAppError(err).Type)
	})

	t.Run("rejects counter from another location", func(t *testing.T) {
		elsewhere, err := counter.ReconstructCounter(1, 2, "Counter A", "A", "00:00", "00:00", 50, true)
		require.NoError(t, err)
		uc, _, _ := newIssueFixture(elsewhere, loc)

		_, err = uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects malformed service date", func(t *testing.T) {
		uc, _, _ := newIssueFixture(ctr, loc)

		_, err := uc.Execute(context.Background(), IssueTicketCommand{
			LocationID: 1,
			CounterID:  1,
			DateFor:    "29-08-2026",
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("grows the number past the pad width", func(t *testing.T) {
		uc, tickets, _ := newIssueFixture(ctr, loc)
		tickets.maxSequenceForUpdateFunc = func(ctx context.Context, counterID uint, dateFor string) (int, error) {
			return 999, nil
		}

		result, err := uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.NoError(t, err)
		assert.Equal(t, "A1000", result.Ticket.QueueNumber)
	})

	t.Run("maps a unique violation on insert to a retryable conflict", func(t *testing.T) {
		uc, tickets, _ := newIssueFixture(ctr, loc)
		tickets.saveFunc = func(ctx context.Context, tk *queue.Ticket) error {
			return &duplicateKeyError{}
		}

		_, err := uc.Execute(context.Background(), IssueTicketCommand{LocationID: 1, CounterID: 1})
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeConflict, errors.GetAppError(err).Type)
	})
}

type duplicateKeyError struct{}

func (e *duplicateKeyError) Error() string {
	return "Error 1062 (23000): Duplicate entry 'A001' for key 'tickets.idx_tickets_number'"
}
