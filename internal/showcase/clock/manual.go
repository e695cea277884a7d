package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler whose time only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []manualEntry
}

type manualEntry struct {
	seq   uint64
	timer *Timer
	fn    func()
}

// NewManual returns a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Schedule registers fn to run once the clock reaches now+delay.
func (m *Manual) Schedule(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := newTimer(m.now.Add(delay))
	m.seq++
	entry := manualEntry{seq: m.seq, timer: t, fn: fn}
	t.stop = func() bool { return m.remove(entry.seq) }
	m.pending = append(m.pending, entry)
	return t
}

func (m *Manual) remove(seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, entry := range m.pending {
		if entry.seq == seq {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of timers that have neither fired nor stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers scheduled by a callback fire in the same call when they fall due
// before the target time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		entry, ok := m.nextDue(target)
		if !ok {
			break
		}
		if entry.timer.claim() && entry.fn != nil {
			entry.fn()
		}
	}

	m.mu.Lock()
	if target.After(m.now) {
		m.now = target
	}
	m.mu.Unlock()
}

// nextDue pops the earliest timer due at or before target and moves the
// clock to its deadline.
func (m *Manual) nextDue(target time.Time) (manualEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return manualEntry{}, false
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		di, dj := m.pending[i].timer.deadline, m.pending[j].timer.deadline
		if di.Equal(dj) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return di.Before(dj)
	})
	head := m.pending[0]
	if head.timer.deadline.After(target) {
		return manualEntry{}, false
	}
	m.pending = m.pending[1:]
	if head.timer.deadline.After(m.now) {
		m.now = head.timer.deadline
	}
	return head, true
}
