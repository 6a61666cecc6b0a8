package usecases

import (
	"context"
	"time"

	"lineup/internal/application/queue/announce"
	"lineup/internal/domain/counter"
	"lineup/internal/domain/queue"
	vo "lineup/internal/domain/queue/valueobjects"
	"lineup/internal/shared/logger"
)

type mockTicketRepository struct {
	saveFunc                 func(ctx context.Context, t *queue.Ticket) error
	updateFunc               func(ctx context.Context, t *queue.Ticket) error
	getByIDFunc              func(ctx context.Context, ticketID uint) (*queue.Ticket, error)
	getByIDForUpdateFunc     func(ctx context.Context, ticketID uint) (*queue.Ticket, error)
	maxSequenceForUpdateFunc func(ctx context.Context, counterID uint, dateFor string) (int, error)
	nextWaitingForUpdateFunc func(ctx context.Context, counterID uint) (*queue.Ticket, error)
	countIssuedFunc          func(ctx context.Context, counterID uint, dateFor string) (int64, error)
	hasActiveTicketFunc      func(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error)
	listWaitingFunc          func(ctx context.Context, counterID uint) ([]*queue.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *queue.Ticket) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *queue.Ticket) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByIDForUpdate(ctx context.Context, ticketID uint) (*queue.Ticket, error) {
	if m.getByIDForUpdateFunc != nil {
		return m.getByIDForUpdateFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) MaxSequenceForUpdate(ctx context.Context, counterID uint, dateFor string) (int, error) {
	if m.maxSequenceForUpdateFunc != nil {
		return m.maxSequenceForUpdateFunc(ctx, counterID, dateFor)
	}
	return 0, nil
}

func (m *mockTicketRepository) NextWaitingForUpdate(ctx context.Context, counterID uint) (*queue.Ticket, error) {
	if m.nextWaitingForUpdateFunc != nil {
		return m.nextWaitingForUpdateFunc(ctx, counterID)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountIssued(ctx context.Context, counterID uint, dateFor string) (int64, error) {
	if m.countIssuedFunc != nil {
		return m.countIssuedFunc(ctx, counterID, dateFor)
	}
	return 0, nil
}

func (m *mockTicketRepository) HasActiveTicket(ctx context.Context, holderID, counterID uint, dateFor string) (bool, error) {
	if m.hasActiveTicketFunc != nil {
		return m.hasActiveTicketFunc(ctx, holderID, counterID, dateFor)
	}
	return false, nil
}

func (m *mockTicketRepository) ListWaiting(ctx context.Context, counterID uint) ([]*queue.Ticket, error) {
	if m.listWaitingFunc != nil {
		return m.listWaitingFunc(ctx, counterID)
	}
	return nil, nil
}

type mockEventRepository struct {
	appendFunc       func(ctx context.Context, event *queue.TicketEvent) error
	listByTicketFunc func(ctx context.Context, ticketID uint) ([]*queue.TicketEvent, error)

	appended []*queue.TicketEvent
}

func (m *mockEventRepository) Append(ctx context.Context, event *queue.TicketEvent) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, event)
	}
	m.appended = append(m.appended, event)
	return nil
}

func (m *mockEventRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*queue.TicketEvent, error) {
	if m.listByTicketFunc != nil {
		return m.listByTicketFunc(ctx, ticketID)
	}
	return m.appended, nil
}

type mockCounterRepository struct {
	getByIDFunc        func(ctx context.Context, counterID uint) (*counter.Counter, error)
	listByLocationFunc func(ctx context.Context, locationID uint) ([]*counter.Counter, error)
}

func (m *mockCounterRepository) GetByID(ctx context.Context, counterID uint) (*counter.Counter, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, counterID)
	}
	return nil, nil
}

func (m *mockCounterRepository) ListByLocation(ctx context.Context, locationID uint) ([]*counter.Counter, error) {
	if m.listByLocationFunc != nil {
		return m.listByLocationFunc(ctx, locationID)
	}
	return nil, nil
}

type mockLocationRepository struct {
	getByIDFunc func(ctx context.Context, locationID uint) (*counter.Location, error)
}

func (m *mockLocationRepository) GetByID(ctx context.Context, locationID uint) (*counter.Location, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, locationID)
	}
	return nil, nil
}

// mockTxManager runs the body directly; the repositories under test are
// in-memory, so there is no transaction to carry.
type mockTxManager struct {
	runFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockDispatcher struct {
	enqueued []announce.Announcement
	full     bool
}

func (m *mockDispatcher) Enqueue(a announce.Announcement) bool {
	if m.full {
		return false
	}
	m.enqueued = append(m.enqueued, a)
	return true
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func testCounter(id uint, prefix string, capacity int) *counter.Counter {
	ctr, err := counter.ReconstructCounter(id, 1, "Counter "+prefix, prefix, "00:00", "00:00", capacity, true)
	if err != nil {
		panic(err)
	}
	return ctr
}

func testLocation(id uint, active bool) *counter.Location {
	loc, err := counter.ReconstructLocation(id, "Main Branch", active)
	if err != nil {
		panic(err)
	}
	return loc
}

func testTicket(id uint, status vo.Status) *queue.Ticket {
	holderID := uint(7)
	now := time.Now().UTC()
	ticket, err := queue.ReconstructTicket(
		id, 1, 1, &holderID, "2026-08-29", int(id), "A001",
		status, nil, now, nil, nil, nil,
	)
	if err != nil {
		panic(err)
	}
	return ticket
}
