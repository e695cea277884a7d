// Package session binds the reveal controller, region watchers and view
// aggregator of a single page visit.
//
// Every mutation (timer callback, ratio observation, mount, close) runs to
// completion under the session's lock, so a session behaves like a
// single-threaded event loop even when wall-clock timers fire on their own
// goroutines. Sessions share no state with each other.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/clock"
	"github.com/louisbranch/royal.studio/internal/showcase/intersect"
	"github.com/louisbranch/royal.studio/internal/showcase/reveal"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

var (
	// ErrUnknownRegion is returned for ratios reported against an undeclared region.
	ErrUnknownRegion = errors.New("session: unknown region")
	// ErrClosed is returned once the session has been closed.
	ErrClosed = errors.New("session: closed")
	// ErrNotMounted is returned for observations before Mount.
	ErrNotMounted = errors.New("session: not mounted")
)

// Snapshot is the full view state pushed to the render layer.
type Snapshot struct {
	SessionID string             `json:"session_id"`
	Variant   string             `json:"variant"`
	Seq       uint64             `json:"seq"`
	Reveal    reveal.State       `json:"reveal"`
	Regions   []viewstate.Region `json:"regions"`
	View      viewstate.View     `json:"view"`
	Palette   viewstate.Palette  `json:"palette"`
}

// Session is one mounted page visit.
type Session struct {
	id       string
	variant  choreography.Variant
	onUpdate func(Snapshot)

	mu         sync.Mutex
	controller *reveal.Controller
	watchers   []*intersect.Watcher
	byName     map[string]*intersect.Watcher
	roles      map[string]viewstate.Role
	seq        uint64
	mounted    bool
	closed     bool
	openedAt   time.Time
}

// New builds an unmounted session. onUpdate is called with the session lock
// held and must not call back into the session.
func New(id string, variant choreography.Variant, sched clock.Scheduler, onUpdate func(Snapshot)) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("session id is required")
	}
	if sched == nil {
		return nil, errors.New("scheduler is required")
	}
	s := &Session{
		id:       id,
		variant:  variant,
		onUpdate: onUpdate,
		byName:   make(map[string]*intersect.Watcher, len(variant.Regions)),
		roles:    make(map[string]viewstate.Role, len(variant.Regions)),
		openedAt: sched.Now(),
	}

	controller, err := reveal.New(variant.RevealConfig(), guarded{inner: sched, s: s}, func(reveal.State) { s.emitLocked() })
	if err != nil {
		return nil, fmt.Errorf("build reveal controller: %w", err)
	}
	s.controller = controller

	for _, spec := range variant.Regions {
		cfg := intersect.Config{Region: spec.Name, Thresholds: spec.Thresholds, Once: spec.Once}
		watcher, err := intersect.NewWatcher(cfg, func(intersect.State) { s.emitLocked() })
		if err != nil {
			return nil, fmt.Errorf("build watcher: %w", err)
		}
		if _, dup := s.byName[watcher.Region()]; dup {
			return nil, fmt.Errorf("build watcher: duplicate region %q", watcher.Region())
		}
		s.watchers = append(s.watchers, watcher)
		s.byName[watcher.Region()] = watcher
		s.roles[watcher.Region()] = spec.Role
	}
	return s, nil
}

// guarded serializes scheduler callbacks through the session lock and drops
// them once the session is closed.
type guarded struct {
	inner clock.Scheduler
	s     *Session
}

func (g guarded) Now() time.Time {
	return g.inner.Now()
}

func (g guarded) Schedule(delay time.Duration, fn func()) *clock.Timer {
	return g.inner.Schedule(delay, func() {
		g.s.mu.Lock()
		defer g.s.mu.Unlock()
		if g.s.closed {
			return
		}
		fn()
	})
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// OpenedAt returns the scheduler time the session was created.
func (s *Session) OpenedAt() time.Time {
	return s.openedAt
}

// Mount starts the watchers and the reveal timers, then emits the initial
// snapshot.
func (s *Session) Mount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.controller.Mount(); err != nil {
		return err
	}
	for _, watcher := range s.watchers {
		watcher.Start()
	}
	s.mounted = true
	s.emitLocked()
	return nil
}

// Observe reports a visibility ratio for a region.
func (s *Session) Observe(region string, ratio float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.mounted {
		return ErrNotMounted
	}
	watcher, ok := s.byName[strings.TrimSpace(region)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	_, err := watcher.Observe(ratio)
	return err
}

// Snapshot returns the current state without advancing Seq.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close unmounts the reveal controller and stops every watcher. It is safe to
// call more than once; no update is emitted after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.mounted = false
	s.controller.Unmount()
	for _, watcher := range s.watchers {
		watcher.Stop()
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) snapshotLocked() Snapshot {
	state := s.controller.State()
	regions := make([]viewstate.Region, 0, len(s.watchers))
	for _, watcher := range s.watchers {
		ws := watcher.State()
		regions = append(regions, viewstate.Region{
			Name:         ws.Region,
			Role:         s.roles[ws.Region],
			Intersecting: ws.Intersecting,
			Leaving:      ws.Leaving,
			Entered:      ws.Entered,
		})
	}
	view := viewstate.Aggregate(state, regions)
	return Snapshot{
		SessionID: s.id,
		Variant:   s.variant.Name,
		Seq:       s.seq,
		Reveal:    state,
		Regions:   regions,
		View:      view,
		Palette:   viewstate.PaletteFor(view.Mode),
	}
}

func (s *Session) emitLocked() {
	if s.closed {
		return
	}
	s.seq++
	if s.onUpdate != nil {
		s.onUpdate(s.snapshotLocked())
	}
}
