// Package clock provides the repeating one-second tick used by the stopwatch
// and the rest countdown. Real ticks run on their own goroutines and are handed
// over to a dispatcher, so the callbacks execute in the caller's serialized
// context. Manual is a virtual clock for tests.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Second is the tick interval used across the tracker.
const Second = time.Second

// Handle cancels a repeating callback. Stop is idempotent and never blocks,
// so it is safe to call from within the callback itself.
type Handle interface {
	Stop()
}

// Scheduler registers repeating callbacks.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Dispatcher runs fn inside the owner's serialized context.
type Dispatcher func(fn func())

var _ Scheduler = (*Real)(nil)

// Real is a Scheduler backed by time.Ticker.
type Real struct {
	dispatch Dispatcher
	wg       sync.WaitGroup
}

func NewReal(dispatch Dispatcher) *Real {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Real{dispatch: dispatch}
}

type realHandle struct {
	stopped  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
}

func (h *realHandle) Stop() {
	h.stopOnce.Do(func() {
		h.stopped.Store(true)
		close(h.done)
	})
}

func (r *Real) Every(interval time.Duration, fn func()) Handle {
	h := &realHandle{done: make(chan struct{})}
	ticker := time.NewTicker(interval)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				r.dispatch(func() {
					// a tick may already be waiting on the dispatcher when Stop is called
					if h.stopped.Load() {
						return
					}
					fn()
				})
			}
		}
	}()

	return h
}

// Wait blocks until every tick goroutine has exited. All handles must be
// stopped first, and Wait must not be called from inside a dispatched callback.
func (r *Real) Wait() {
	r.wg.Wait()
}
