package testutil

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// ManualTimer is a timer service driven by the test.
//
// Callbacks run only when Advance or RunAll is called, on the caller's
// goroutine. Implements robot.Timer.
type ManualTimer struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending []*manualEntry
}

type manualEntry struct {
	id  int
	due time.Duration
	fn  func()
}

// NewManualTimer creates a timer at time zero with nothing scheduled.
func NewManualTimer() *ManualTimer {
	return &ManualTimer{}
}

// AfterFunc schedules f to run d after the timer's current time.
func (m *ManualTimer) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.pending = append(m.pending, &manualEntry{id: id, due: m.now + d, fn: f})
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, e := range m.pending {
			if e.id == id {
				m.pending = slices.Delete(m.pending, i, i+1)
				return true
			}
		}
		return false
	}
}

// Advance moves time forward by d and runs every callback that came due,
// in due order.
func (m *ManualTimer) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	due := m.takeDue(m.now)
	m.mu.Unlock()
	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// RunAll runs every pending callback regardless of due time.
func (m *ManualTimer) RunAll() int {
	m.mu.Lock()
	due := m.takeDue(time.Duration(1<<63 - 1))
	m.mu.Unlock()
	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled callbacks.
func (m *ManualTimer) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Due returns the due time of each pending callback, in scheduling order.
func (m *ManualTimer) Due() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.pending))
	for i, e := range m.pending {
		out[i] = e.due
	}
	return out
}

func (m *ManualTimer) takeDue(limit time.Duration) []*manualEntry {
	var due, rest []*manualEntry
	for _, e := range m.pending {
		if e.due <= limit {
			due = append(due, e)
		} else {
			rest = append(rest, e)
		}
	}
	m.pending = rest
	slices.SortStableFunc(due, func(a, b *manualEntry) int {
		return cmp.Compare(a.due, b.due)
	})
	return due
}
