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

func TestQueueStatusUseCase_Execute(t *testing.T) {
	ctr := testCounter(1, "A", 10)
	counters := &mockCounterRepository{
		getByIDFunc: func(ctx context.Context, counterID uint) (*counter.Counter, error) {
			if counterID != ctr.ID() {
				return nil, errors.NewNotFoundError("counter")
			}
			return ctr, nil
		},
	}

	t.Run("reports capacity and queue depth", func(t *testing.T) {
		tickets := &mockTicketRepository{
			countIssuedFunc: func(ctx context.Context, counterID uint, dateFor string) (int64, error) {
				return 7, nil
			},
			listWaitingFunc: func(ctx context.Context, counterID uint) ([]*queue.Ticket, error) {
				return []*queue.Ticket{testTicket(1, vo.StatusWaiting), testTicket(2, vo.StatusWaiting)}, nil
			},
		}

		uc := NewQueueStatusUseCase(tickets, counters)
		result, err := uc.Execute(context.Background(), 1, "2026-08-29")
		require.NoError(t, err)
		assert.Equal(t, 10, result.Capacity.Capacity)
		assert.Equal(t, 7, result.Capacity.Issued)
		assert.Equal(t, 3, result.Capacity.Available)
		assert.False(t, result.Capacity.AtCapacity)
		assert.Equal(t, 2, result.Waiting)
		assert.True(t, result.Open)
	})

	t.Run("available never goes negative", func(t *testing.T) {
		tickets := &mockTicketRepository{
			countIssuedFunc: func(ctx context.Context, counterID uint, dateFor string) (int64, error) {
				return 12, nil
			},
		}

		uc := NewQueueStatusUseCase(tickets, counters)
		result, err := uc.Execute(context.Background(), 1, "")
		require.NoError(t, err)
		assert.Equal(t, 0, result.Capacity.Available)
		assert.True(t, result.Capacity.AtCapacity)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		uc := NewQueueStatusUseCase(&mockTicketRepository{}, counters)
		_, err := uc.Execute(context.Background(), 1, "08/29/2026")
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestGetTicketUseCase_Execute(t *testing.T) {
	ticket := testTicket(5, vo.StatusServing)
	tickets := &mockTicketRepository{
		getByIDFunc: func(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
			if ticketID != 5 {
				return nil, errors.NewNotFoundError("ticket")
			}
			return ticket, nil
		},
	}
	events := &mockEventRepository{}
	event, err := queue.NewTicketEvent(5, nil, queue.EventIssued, nil)
	require.NoError(t, err)
	require.NoError(t, events.Append(context.Background(), event))

	uc := NewGetTicketUseCase(tickets, events)

	result, err := uc.Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), result.Ticket.ID)
	require.Len(t, result.Events, 1)
	assert.Equal(t, string(queue.EventIssued), result.Events[0].Type)

	_, err = uc.Execute(context.Background(), 404)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListWaitingUseCase_Execute(t *testing.T) {
	counters := &mockCounterRepository{
		getByIDFunc: func(ctx context.Context, counterID uint) (*counter.Counter, error) {
			if counterID != 1 {
				return nil, errors.NewNotFoundError("counter")
			}
			return testCounter(1, "A", 10), nil
		},
	}
	tickets := &mockTicketRepository{
		listWaitingFunc: func(ctx context.Context, counterID uint) ([]*queue.Ticket, error) {
			return []*queue.Ticket{testTicket(1, vo.StatusWaiting)}, nil
		},
	}

	uc := NewListWaitingUseCase(tickets, counters)

	list, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A001", list[0].QueueNumber)

	_, err = uc.Execute(context.Background(), 2)
	assert.True(t, errors.IsNotFoundError(err))
}
