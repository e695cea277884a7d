// Package intersect turns reported visibility ratios for one page region into
// a boolean intersecting flag.
package intersect

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidRatio is returned for ratios that are NaN or outside [0,1].
var ErrInvalidRatio = errors.New("intersect: ratio must be within [0,1]")

// Config describes one watched region.
//
// With a single threshold the region intersects while ratio >= threshold. A
// zero threshold means any visible fraction, so it needs ratio > 0.
// With several thresholds the region enters at the highest and leaves below
// the lowest, keeping its previous flag in between. Once latches the flag
// after the first entry.
type Config struct {
	Region     string
	Thresholds []float64
	Once       bool
}

// Validate checks the region name and thresholds.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region name is required")
	}
	if len(c.Thresholds) == 0 {
		return fmt.Errorf("region %q: at least one threshold is required", c.Region)
	}
	for _, t := range c.Thresholds {
		if math.IsNaN(t) || t < 0 || t > 1 {
			return fmt.Errorf("region %q: threshold %v outside [0,1]", c.Region, t)
		}
	}
	return nil
}

// State is the observable condition of a watched region.
type State struct {
	Region       string  `json:"region"`
	Ratio        float64 `json:"ratio"`
	Intersecting bool    `json:"intersecting"`
	Leaving      bool    `json:"leaving"`
	Entered      bool    `json:"entered"`
}

// Watcher owns one region's observation. It is not safe for concurrent use.
type Watcher struct {
	region     string
	thresholds []float64
	once       bool
	onChange   func(State)

	active bool
	band   int
	state  State
}

// NewWatcher validates cfg and returns a stopped watcher.
func NewWatcher(cfg Config, onChange func(State)) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	thresholds := append([]float64(nil), cfg.Thresholds...)
	sort.Float64s(thresholds)
	thresholds = dedupe(thresholds)
	region := strings.TrimSpace(cfg.Region)
	return &Watcher{
		region:     region,
		thresholds: thresholds,
		once:       cfg.Once,
		onChange:   onChange,
		band:       -1,
		state:      State{Region: region},
	}, nil
}

func dedupe(sorted []float64) []float64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Region returns the watched region name.
func (w *Watcher) Region() string {
	return w.region
}

// Thresholds returns the normalized, ascending threshold list.
func (w *Watcher) Thresholds() []float64 {
	return append([]float64(nil), w.thresholds...)
}

// State returns the current region state.
func (w *Watcher) State() State {
	return w.state
}

// Active reports whether the watcher is between Start and Stop.
func (w *Watcher) Active() bool {
	return w.active
}

// Start begins accepting observations.
func (w *Watcher) Start() {
	w.active = true
}

// Stop ends observation; later ratios are ignored.
func (w *Watcher) Stop() {
	w.active = false
}

// Observe records a visibility ratio. It reports whether the region's flags
// changed. The ratio is always recorded; ratios that stay inside the current
// threshold band never change the flags.
func (w *Watcher) Observe(ratio float64) (bool, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return false, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}
	if !w.active {
		return false, nil
	}
	w.state.Ratio = ratio
	band := w.bandOf(ratio)
	if band == w.band {
		return false, nil
	}
	w.band = band

	prev := w.state
	w.state.Intersecting = w.evaluate(ratio, prev.Intersecting)
	if w.state.Intersecting {
		w.state.Entered = true
	}
	w.state.Leaving = w.state.Entered && !w.state.Intersecting

	changed := prev.Intersecting != w.state.Intersecting || prev.Leaving != w.state.Leaving || prev.Entered != w.state.Entered
	if changed && w.onChange != nil {
		w.onChange(w.state)
	}
	return changed, nil
}

func (w *Watcher) bandOf(ratio float64) int {
	band := 0
	for _, t := range w.thresholds {
		if reaches(ratio, t) {
			band++
		}
	}
	return band
}

func (w *Watcher) evaluate(ratio float64, current bool) bool {
	if w.once && w.state.Entered {
		return true
	}
	enter := w.thresholds[len(w.thresholds)-1]
	leave := w.thresholds[0]
	switch {
	case reaches(ratio, enter):
		return true
	case !reaches(ratio, leave):
		return false
	default:
		return current
	}
}

func reaches(ratio, threshold float64) bool {
	if threshold == 0 {
		return ratio > 0
	}
	return ratio >= threshold
}
