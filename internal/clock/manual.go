package clock

import (
	"sort"
	"time"
)

var _ Scheduler = (*Manual)(nil)

// Manual is a virtual Scheduler. Callbacks only fire from Advance, on the
// caller's goroutine, in due-time order.
type Manual struct {
	now     time.Duration
	nextID  int
	handles []*manualHandle
}

func NewManual() *Manual {
	return &Manual{}
}

type manualHandle struct {
	id       int
	interval time.Duration
	due      time.Duration
	fn       func()
	stopped  bool
}

func (h *manualHandle) Stop() {
	h.stopped = true
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = Second
	}
	m.nextID++
	h := &manualHandle{
		id:       m.nextID,
		interval: interval,
		due:      m.now + interval,
		fn:       fn,
	}
	m.handles = append(m.handles, h)
	return h
}

// Advance moves the virtual clock forward by d and fires every due callback.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		h := m.nextDue(target)
		if h == nil {
			break
		}
		m.now = h.due
		h.due += h.interval
		h.fn()
	}
	m.now = target
	m.prune()
}

// Tick advances the clock by one second.
func (m *Manual) Tick() {
	m.Advance(Second)
}

// Active returns the number of handles that have not been stopped.
func (m *Manual) Active() int {
	m.prune()
	return len(m.handles)
}

// Now returns the virtual time elapsed since the Manual was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) nextDue(target time.Duration) *manualHandle {
	var due []*manualHandle
	for _, h := range m.handles {
		if !h.stopped && h.due <= target {
			due = append(due, h)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})
	return due[0]
}

func (m *Manual) prune() {
	active := m.handles[:0]
	for _, h := range m.handles {
		if !h.stopped {
			active = append(active, h)
		}
	}
	m.handles = active
}
