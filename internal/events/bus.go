package events

import (
	"context"
	"sync"
	"time"

	"careerpath-backend/internal/shared/telemetry"
)

// Handler consumes profile-changed events.
type Handler interface {
	HandleProfileChanged(ctx context.Context, evt ProfileChanged) error
}

const (
	defaultRetryCapacity = 128
	defaultMaxAttempts   = 3
	retryBaseDelay       = 500 * time.Millisecond
)

type delivery struct {
	handler Handler
	evt     ProfileChanged
	attempt int
}

// Bus is an in-process publish/subscribe dispatcher. Publish runs handlers
// synchronously on the caller's goroutine; a handler failure is logged and
// handed to a bounded retry queue, never returned to the publisher, so a
// profile write is never blocked by analytics-store problems.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler

	retryCh     chan delivery
	retryMu     sync.Mutex // guards retryCh sends against close
	closed      bool
	maxAttempts int
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewBus constructs a Bus and starts its retry worker.
func NewBus() *Bus {
	b := &Bus{
		retryCh:     make(chan delivery, defaultRetryCapacity),
		maxAttempts: defaultMaxAttempts,
	}
	b.wg.Add(1)
	go b.retryLoop()
	return b
}

// Subscribe registers a handler for profile-changed events.
func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Publish dispatches the event to every subscriber in order. It returns after
// all handlers have run; failures are logged and re-enqueued for retry.
func (b *Bus) Publish(ctx context.Context, evt ProfileChanged) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h.HandleProfileChanged(ctx, evt); err != nil {
			telemetry.Error("events.sync_failed", map[string]any{
				"user_id": evt.UserID,
				"attempt": 1,
				"error":   err.Error(),
			})
			b.enqueueRetry(delivery{handler: h, evt: evt, attempt: 1})
		}
	}
}

// Close stops the retry worker. Deliveries still queued or re-enqueued by an
// in-flight retry are dropped.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		b.retryMu.Lock()
		b.closed = true
		close(b.retryCh)
		b.retryMu.Unlock()
	})
	b.wg.Wait()
}

func (b *Bus) enqueueRetry(d delivery) {
	if d.attempt >= b.maxAttempts {
		telemetry.Error("events.sync_dropped", map[string]any{
			"user_id":  d.evt.UserID,
			"attempts": d.attempt,
		})
		return
	}

	b.retryMu.Lock()
	defer b.retryMu.Unlock()
	if b.closed {
		telemetry.Error("events.sync_dropped", map[string]any{
			"user_id":  d.evt.UserID,
			"attempts": d.attempt,
			"reason":   "bus closed",
		})
		return
	}
	select {
	case b.retryCh <- d:
	default:
		// Queue full; the stores stay divergent until the next profile edit.
		telemetry.Error("events.retry_queue_full", map[string]any{
			"user_id": d.evt.UserID,
		})
	}
}

func (b *Bus) retryLoop() {
	defer b.wg.Done()
	for d := range b.retryCh {
		delay := retryBaseDelay << (d.attempt - 1)
		time.Sleep(delay)

		attempt := d.attempt + 1
		if err := d.handler.HandleProfileChanged(context.Background(), d.evt); err != nil {
			telemetry.Error("events.sync_failed", map[string]any{
				"user_id": d.evt.UserID,
				"attempt": attempt,
				"error":   err.Error(),
			})
			b.enqueueRetry(delivery{handler: d.handler, evt: d.evt, attempt: attempt})
			continue
		}
		telemetry.Info("events.sync_recovered", map[string]any{
			"user_id": d.evt.UserID,
			"attempt": attempt,
		})
	}
}
