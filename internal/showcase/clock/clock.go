package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, fn func()) *Timer
}

var timerIDs atomic.Uint64

// Timer is the handle for one scheduled callback.
type Timer struct {
	id       uint64
	deadline time.Time

	mu      sync.Mutex
	fired   bool
	stopped bool
	stop    func() bool
}

func newTimer(deadline time.Time) *Timer {
	return &Timer{id: timerIDs.Add(1), deadline: deadline}
}

// ID returns a process-unique identifier for diagnostics.
func (t *Timer) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Deadline returns the time the callback is due.
func (t *Timer) Deadline() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.deadline
}

// Fired reports whether the callback has started running.
func (t *Timer) Fired() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Stopped reports whether Stop cancelled the callback.
func (t *Timer) Stopped() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Stop cancels the callback. It returns false when the callback already ran
// or the timer was already stopped.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	if t.fired || t.stopped {
		t.mu.Unlock()
		return false
	}
	t.stopped = true
	stop := t.stop
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
	return true
}

// claim marks the timer fired unless it was stopped first.
func (t *Timer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.fired = true
	return true
}

// Real schedules callbacks on wall-clock time.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

// Now returns the current wall-clock time.
func (Real) Now() time.Time {
	return time.Now()
}

// Schedule runs fn on its own goroutine once delay has elapsed.
func (r Real) Schedule(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := newTimer(r.Now().Add(delay))
	t.mu.Lock()
	inner := time.AfterFunc(delay, func() {
		if !t.claim() {
			return
		}
		if fn != nil {
			fn()
		}
	})
	t.stop = inner.Stop
	t.mu.Unlock()
	return t
}
