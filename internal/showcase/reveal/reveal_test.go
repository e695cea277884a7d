package reveal

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/royal.studio/internal/showcase/clock"
)

var epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type recorder struct {
	states []State
}

func (r *recorder) record(s State) {
	r.states = append(r.states, s)
}

func newController(t *testing.T, cfg Config) (*Controller, *clock.Manual, *recorder) {
	t.Helper()
	m := clock.NewManual(epoch)
	rec := &recorder{}
	c, err := New(cfg, m, rec.record)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, m, rec
}

func TestRevealSequence(t *testing.T) {
	t.Parallel()

	c, m, rec := newController(t, Config{LoadingDelay: time.Second, HeadingHideDelay: Delay(4 * time.Second)})
	if got := c.State(); got != Initial() {
		t.Fatalf("initial state = %+v, want %+v", got, Initial())
	}
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	m.Advance(999 * time.Millisecond)
	if !c.State().Loading {
		t.Fatal("loading cleared before delay")
	}

	m.Advance(time.Millisecond)
	if got, want := c.State(), (State{Loading: false, HeadingVisible: true}); got != want {
		t.Fatalf("state after loading delay = %+v, want %+v", got, want)
	}

	m.Advance(3999 * time.Millisecond)
	if !c.State().HeadingVisible {
		t.Fatal("heading hidden before its delay")
	}
	m.Advance(time.Millisecond)
	if got, want := c.State(), (State{Loading: false, HeadingVisible: false}); got != want {
		t.Fatalf("state after heading delay = %+v, want %+v", got, want)
	}

	m.Advance(time.Hour)
	if len(rec.states) != 2 {
		t.Fatalf("transitions = %d, want 2: %+v", len(rec.states), rec.states)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", m.Pending())
	}
}

func TestRevealWithoutHeadingHide(t *testing.T) {
	t.Parallel()

	c, m, rec := newController(t, Config{LoadingDelay: 2200 * time.Millisecond})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	m.Advance(10 * time.Second)
	if got, want := c.State(), (State{Loading: false, HeadingVisible: true}); got != want {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
	if len(rec.states) != 1 {
		t.Fatalf("transitions = %d, want 1", len(rec.states))
	}
}

func TestRevealTransitionsAreMonotonicAndOrdered(t *testing.T) {
	t.Parallel()

	// A zero heading delay must still follow the loader.
	c, m, rec := newController(t, Config{LoadingDelay: 500 * time.Millisecond, HeadingHideDelay: Delay(0)})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		m.Advance(100 * time.Millisecond)
	}

	sawLoaded := false
	sawHidden := false
	for _, s := range rec.states {
		if !s.HeadingVisible && s.Loading {
			t.Fatalf("heading hidden while loading: %+v", rec.states)
		}
		if sawLoaded && s.Loading {
			t.Fatalf("loading re-entered: %+v", rec.states)
		}
		if sawHidden && s.HeadingVisible {
			t.Fatalf("heading re-shown: %+v", rec.states)
		}
		sawLoaded = sawLoaded || !s.Loading
		sawHidden = sawHidden || !s.HeadingVisible
	}
	if !sawLoaded || !sawHidden {
		t.Fatalf("transitions = %+v, want loaded then hidden", rec.states)
	}
}

func TestUnmountBeforeLoadingCancelsTimer(t *testing.T) {
	t.Parallel()

	c, m, rec := newController(t, Config{LoadingDelay: time.Second, HeadingHideDelay: Delay(4 * time.Second)})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	c.Unmount()
	m.Advance(time.Minute)

	if got := c.State(); got != Initial() {
		t.Fatalf("state after unmount = %+v, want %+v", got, Initial())
	}
	if len(rec.states) != 0 {
		t.Fatalf("transitions after unmount = %+v, want none", rec.states)
	}
	if m.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", m.Pending())
	}
}

func TestUnmountBetweenTimersCancelsHeading(t *testing.T) {
	t.Parallel()

	c, m, rec := newController(t, Config{LoadingDelay: time.Second, HeadingHideDelay: Delay(4 * time.Second)})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	m.Advance(time.Second)
	if c.Pending().Heading == nil {
		t.Fatal("heading timer not pending after loader")
	}
	c.Unmount()
	m.Advance(time.Minute)

	if got, want := c.State(), (State{Loading: false, HeadingVisible: true}); got != want {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
	if len(rec.states) != 1 {
		t.Fatalf("transitions = %d, want 1", len(rec.states))
	}
}

func TestStaleCallbackAfterUnmountIsIgnored(t *testing.T) {
	t.Parallel()

	c, _, rec := newController(t, Config{LoadingDelay: time.Second})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	c.Unmount()
	// Simulate a wall-clock timer that fired concurrently with Stop.
	c.finishLoading()
	if got := c.State(); got != Initial() {
		t.Fatalf("state = %+v, want %+v", got, Initial())
	}
	if len(rec.states) != 0 {
		t.Fatalf("transitions = %+v, want none", rec.states)
	}
}

func TestMountIsOneShot(t *testing.T) {
	t.Parallel()

	c, _, _ := newController(t, Config{LoadingDelay: time.Second})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := c.Mount(); !errors.Is(err, ErrAlreadyMounted) {
		t.Fatalf("second Mount() error = %v, want %v", err, ErrAlreadyMounted)
	}
	c.Unmount()
	c.Unmount()
	if err := c.Mount(); !errors.Is(err, ErrUnmounted) {
		t.Fatalf("Mount() after Unmount error = %v, want %v", err, ErrUnmounted)
	}
}

func TestPendingReportsDeadlines(t *testing.T) {
	t.Parallel()

	c, m, _ := newController(t, Config{LoadingDelay: time.Second, HeadingHideDelay: Delay(4 * time.Second)})
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	p := c.Pending()
	if p.Loading == nil || p.Heading != nil {
		t.Fatalf("pending = %+v, want loading only", p)
	}
	if got, want := p.Loading.Deadline(), epoch.Add(time.Second); !got.Equal(want) {
		t.Fatalf("loading deadline = %v, want %v", got, want)
	}
	m.Advance(time.Second)
	p = c.Pending()
	if p.Loading != nil || p.Heading == nil {
		t.Fatalf("pending = %+v, want heading only", p)
	}
	if got, want := p.Heading.Deadline(), epoch.Add(5*time.Second); !got.Equal(want) {
		t.Fatalf("heading deadline = %v, want %v", got, want)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   Config
		sched clock.Scheduler
	}{
		{name: "negative loading", cfg: Config{LoadingDelay: -time.Second}, sched: clock.NewManual(epoch)},
		{name: "negative heading", cfg: Config{HeadingHideDelay: Delay(-time.Second)}, sched: clock.NewManual(epoch)},
		{name: "nil scheduler", cfg: Config{LoadingDelay: time.Second}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.cfg, tc.sched, nil); err == nil {
				t.Fatal("New() error = nil, want error")
			}
		})
	}
}
