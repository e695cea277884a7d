// Package reveal drives the timed loader and hero heading of a page visit.
//
// A Controller walks a fixed, one-way sequence: the loader clears after
// LoadingDelay, then the heading hides after HeadingHideDelay. Both timers are
// owned by the controller and are cancelled when the view unmounts.
package reveal

import (
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/royal.studio/internal/showcase/clock"
)

var (
	// ErrAlreadyMounted is returned when Mount is called twice.
	ErrAlreadyMounted = errors.New("reveal: already mounted")
	// ErrUnmounted is returned when Mount is called after Unmount.
	ErrUnmounted = errors.New("reveal: unmounted")
)

// Config holds the reveal timings. A nil HeadingHideDelay keeps the heading
// visible for the whole visit.
type Config struct {
	LoadingDelay     time.Duration
	HeadingHideDelay *time.Duration
}

// Validate rejects negative delays.
func (c Config) Validate() error {
	if c.LoadingDelay < 0 {
		return fmt.Errorf("loading delay %s is negative", c.LoadingDelay)
	}
	if c.HeadingHideDelay != nil && *c.HeadingHideDelay < 0 {
		return fmt.Errorf("heading hide delay %s is negative", *c.HeadingHideDelay)
	}
	return nil
}

// Delay returns a pointer to d for use as Config.HeadingHideDelay.
func Delay(d time.Duration) *time.Duration {
	return &d
}

// State is the loader/heading visibility pair exposed to the render layer.
type State struct {
	Loading        bool `json:"loading"`
	HeadingVisible bool `json:"heading_visible"`
}

// Initial is the state of a freshly loaded page.
func Initial() State {
	return State{Loading: true, HeadingVisible: true}
}

// Pending lists the outstanding timers of a controller.
type Pending struct {
	Loading *clock.Timer
	Heading *clock.Timer
}

// Controller is not safe for concurrent use; the owner serializes Mount,
// Unmount and the scheduler's callbacks.
type Controller struct {
	cfg      Config
	sched    clock.Scheduler
	onChange func(State)

	state     State
	mounted   bool
	unmounted bool

	loadingTimer *clock.Timer
	headingTimer *clock.Timer
}

// New builds a controller in the initial state.
func New(cfg Config, sched clock.Scheduler, onChange func(State)) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, errors.New("scheduler is required")
	}
	return &Controller{
		cfg:      cfg,
		sched:    sched,
		onChange: onChange,
		state:    Initial(),
	}, nil
}

// State returns the current reveal state.
func (c *Controller) State() State {
	return c.state
}

// Pending returns the timers that have not fired yet.
func (c *Controller) Pending() Pending {
	var p Pending
	if c.loadingTimer != nil && !c.loadingTimer.Fired() && !c.loadingTimer.Stopped() {
		p.Loading = c.loadingTimer
	}
	if c.headingTimer != nil && !c.headingTimer.Fired() && !c.headingTimer.Stopped() {
		p.Heading = c.headingTimer
	}
	return p
}

// Mount starts the loader timer.
func (c *Controller) Mount() error {
	if c.unmounted {
		return ErrUnmounted
	}
	if c.mounted {
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.loadingTimer = c.sched.Schedule(c.cfg.LoadingDelay, c.finishLoading)
	return nil
}

// Unmount cancels pending timers. Callbacks that slip past Stop are ignored.
func (c *Controller) Unmount() {
	if c.unmounted {
		return
	}
	c.unmounted = true
	c.mounted = false
	c.loadingTimer.Stop()
	c.headingTimer.Stop()
}

func (c *Controller) live() bool {
	return c.mounted && !c.unmounted
}

func (c *Controller) finishLoading() {
	if !c.live() || !c.state.Loading {
		return
	}
	c.state.Loading = false
	c.emit()
	// The heading timer is armed only here so it always follows the loader.
	if c.cfg.HeadingHideDelay != nil && c.live() {
		c.headingTimer = c.sched.Schedule(*c.cfg.HeadingHideDelay, c.hideHeading)
	}
}

func (c *Controller) hideHeading() {
	if !c.live() || c.state.Loading || !c.state.HeadingVisible {
		return
	}
	c.state.HeadingVisible = false
	c.emit()
}

func (c *Controller) emit() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}
