// Package announce delivers queue announcements to display boards and
// speakers through a bounded worker pool. The pool drains by priority, so a
// fresh call is spoken before a backlog of informational notices.
package announce

import (
	"container/heap"
	"context"
	"sync"

	app "lineup/internal/application/queue/announce"
	"lineup/internal/shared/goroutine"
	"lineup/internal/shared/logger"
)

// Publisher delivers one announcement to the outside world.
type Publisher interface {
	Publish(ctx context.Context, a app.Announcement) error
}

// Pool is a fixed-size worker pool over a priority queue. It implements the
// engine's dispatcher contract: Enqueue never blocks, and announcements are
// delivered outside any database transaction.
type Pool struct {
	publisher Publisher
	workers   int
	capacity  int
	logger    logger.Interface

	mu      sync.Mutex
	queue   announcementHeap
	notify  chan struct{}
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(publisher Publisher, workers, capacity int, log logger.Interface) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if capacity <= 0 {
		capacity = 256
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		publisher: publisher,
		workers:   workers,
		capacity:  capacity,
		logger:    log,
		notify:    make(chan struct{}, capacity),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the workers. Each worker pops the highest-priority pending
// announcement and publishes it.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		goroutine.SafeGo(p.logger, "announce.worker", func() {
			defer p.wg.Done()
			p.run()
		})
	}
	p.logger.Infow("announcement pool started",
		"workers", p.workers,
		"capacity", p.capacity,
	)
}

// Stop prevents new enqueues and waits for the workers to finish what is
// already queued.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.logger.Infow("announcement pool stopped")
}

// Enqueue accepts an announcement for asynchronous delivery. It reports
// false when the pool is stopped or the queue is full; callers treat a
// dropped announcement as non-fatal.
func (p *Pool) Enqueue(a app.Announcement) bool {
	p.mu.Lock()
	if p.stopped || p.queue.Len() >= p.capacity {
		p.mu.Unlock()
		p.logger.Warnw("announcement dropped",
			"queue_number", a.QueueNumber,
			"kind", a.Kind,
		)
		return false
	}
	heap.Push(&p.queue, a)
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
	return true
}

func (p *Pool) run() {
	for {
		a, ok := p.pop()
		if ok {
			p.deliver(a)
			continue
		}

		select {
		case <-p.ctx.Done():
			// Drain what is left before exiting.
			for {
				a, ok := p.pop()
				if !ok {
					return
				}
				p.deliver(a)
			}
		case <-p.notify:
		}
	}
}

func (p *Pool) pop() (app.Announcement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.queue.Len() == 0 {
		return app.Announcement{}, false
	}
	return heap.Pop(&p.queue).(app.Announcement), true
}

func (p *Pool) deliver(a app.Announcement) {
	if err := p.publisher.Publish(context.Background(), a); err != nil {
		p.logger.Errorw("failed to publish announcement",
			"queue_number", a.QueueNumber,
			"counter_id", a.CounterID,
			"error", err,
		)
		return
	}
	p.logger.Debugw("announcement published",
		"queue_number", a.QueueNumber,
		"kind", a.Kind,
		"priority", a.Priority.String(),
	)
}

// announcementHeap orders pending announcements by the priority ordering
// function, highest first.
type announcementHeap []app.Announcement

func (h announcementHeap) Len() int { return len(h) }

func (h announcementHeap) Less(i, j int) bool {
	return app.Compare(h[i].Priority, h[j].Priority) > 0
}

func (h announcementHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *announcementHeap) Push(x any) {
	*h = append(*h, x.(app.Announcement))
}

func (h *announcementHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
