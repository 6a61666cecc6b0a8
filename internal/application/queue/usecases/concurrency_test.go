package usecases

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/application/queue/announce"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/shared/errors"
)

// contendedTicketStore is an in-memory ticket store whose transactions
// serialize on a single mutex, modelling the per-counter row lock held from
// the first locking read to commit. Store methods assume the caller runs
// inside such a transaction.
type contendedTicketStore struct {
	mu      sync.Mutex
	tickets []*queue.Ticket
	nextID  uint
}

func (s *contendedTicketStore) txManager() *mockTxManager {
	return &mockTxManager{
		runFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return fn(ctx)
		},
	}
}

func (s *contendedTicketStore) Save(ctx context.Context, t *queue.Ticket) error {
	s.nextID++
	if err := t.SetID(s.nextID); err != nil {
		return err
	}
	s.tickets = append(s.tickets, t)
	return nil
}

func (s *contendedTicketStore) Update(ctx context.Context, t *queue.Ticket) error {
	return nil
}

func (s *contendedTicketStore) GetByID(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	for _, t := range s.tickets {
		if t.ID() == ticketID {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (s *contendedTicketStore) GetByIDForUpdate(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	return s.GetByID(ctx, ticketID)
}

func (s *contendedTicketStore) MaxSequenceForUpdate(ctx context.Context, counterID uint, dateFor string) (int, error) {
	max := 0
	for _, t := range s.tickets {
		if t.CounterID() == counterID && t.DateFor() == dateFor && t.Sequence() > max {
			max = t.Sequence()
		}
	}
	return max, nil
}

func (s *contendedTicketStore) NextWaitingForUpdate(ctx context.Context, counterID uint) (*queue.Ticket, error) {
	var next *queue.Ticket
	for _, t := range s.tickets {
		if t.CounterID() != counterID || t.Status() != vo.StatusWaiting {
			continue
		}
		if next == nil || t.Sequence() < next.Sequence() {
			next = t
		}
	}
	return next, nil
}

func (s *contendedTicketStore) CountIssued(ctx context.Context, counterID uint, dateFor string) (int64, error) {
	var count int64
	for _, t := range s.tickets {
		if t.CounterID() == counterID && t.DateFor() == dateFor {
			count++
		}
	}
	return count, nil
}

func (s *contendedTicketStore) HasActiveTicket(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error) {
	for _, t := range s.tickets {
		if t.CounterID() == counterID && t.DateFor() == dateFor &&
			t.HolderID() != nil && *t.HolderID() == holderID && t.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (s *contendedTicketStore) ListWaiting(ctx context.Context, counterID uint) ([]*queue.Ticket, error) {
	return nil, nil
}

type recordingDispatcher struct {
	mu  sync.Mutex
	ids []uint
}

func (d *recordingDispatcher) Enqueue(a announce.Announcement) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, a.TicketID)
	return true
}

func TestIssueTicketUseCase_ConcurrentIssuance(t *testing.T) {
	const (
		capacity = 8
		attempts = 20
	)

	store := &contendedTicketStore{}
	events := &mockEventRepository{}
	counters := &mockCounterRepository{
		getByIDFunc: func(ctx context.Context, counterID uint) (*counter.Counter, error) {
			return testCounter(1, "A", capacity), nil
		},
	}
	locations := &mockLocationRepository{
		getByIDFunc: func(ctx context.Context, locationID uint) (*counter.Location, error) {
			return testLocation(1, true), nil
		},
	}
	uc := NewIssueTicketUseCase(store, events, counters, locations, store.txManager(), 3, &mockLogger{})

	var (
		wg       sync.WaitGroup
		resultMu sync.Mutex
		issued   []*IssueTicketResult
		failures []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Execute(context.Background(), IssueTicketCommand{
				LocationID: 1,
				CounterID:  1,
				DateFor:    "2026-08-29",
			})
			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			issued = append(issued, res)
		}()
	}
	wg.Wait()

	// Capacity is never overshot, no matter how many attempts race.
	require.Len(t, issued, capacity)
	require.Len(t, failures, attempts-capacity)
	for _, err := range failures {
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeCapacityExhausted, appErr.Type)
	}

	// Sequences are dense 1..capacity with no gaps or duplicates.
	sequences := make([]int, 0, len(store.tickets))
	numbers := make(map[string]bool)
	for _, tk := range store.tickets {
		sequences = append(sequences, tk.Sequence())
		assert.False(t, numbers[tk.QueueNumber()], "queue number %s issued twice", tk.QueueNumber())
		numbers[tk.QueueNumber()] = true
	}
	sort.Ints(sequences)
	for i, seq := range sequences {
		assert.Equal(t, i+1, seq)
	}

	// One issued event per successful issuance.
	assert.Len(t, events.appended, capacity)
}

func TestCallNextUseCase_ConcurrentCalls(t *testing.T) {
	const (
		waiting = 5
		callers = 12
	)

	store := &contendedTicketStore{}
	for i := 1; i <= waiting; i++ {
		tk, err := queue.NewTicket(1, 1, nil, "2026-08-29")
		require.NoError(t, err)
		require.NoError(t, tk.AssignSequence(i, vo.FormatQueueNumber("A", i, 3)))
		require.NoError(t, store.Save(context.Background(), tk))
	}

	events := &mockEventRepository{}
	counters := &mockCounterRepository{
		getByIDFunc: func(ctx context.Context, counterID uint) (*counter.Counter, error) {
			return testCounter(1, "A", 100), nil
		},
	}
	dispatcher := &recordingDispatcher{}
	uc := NewCallNextUseCase(store, events, counters, store.txManager(), dispatcher, &mockLogger{})

	var (
		wg       sync.WaitGroup
		resultMu sync.Mutex
		claimed  []uint
		empty    int
		errs     []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Execute(context.Background(), CallNextCommand{CounterID: 1, ActorID: 9})
			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if res.Ticket == nil {
				empty++
				return
			}
			claimed = append(claimed, res.Ticket.ID)
		}()
	}
	wg.Wait()
	require.Empty(t, errs)

	// Every waiting ticket is claimed exactly once; the surplus callers get
	// the empty-queue success.
	require.Len(t, claimed, waiting)
	assert.Equal(t, callers-waiting, empty)
	seen := make(map[uint]bool)
	for _, id := range claimed {
		assert.False(t, seen[id], "ticket %d claimed twice", id)
		seen[id] = true
	}

	// One called announcement and one called event per claim.
	assert.Len(t, dispatcher.ids, waiting)
	assert.Len(t, events.appended, waiting)
}
