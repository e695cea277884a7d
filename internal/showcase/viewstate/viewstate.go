// Package viewstate derives the named visual mode of a page from its reveal
// and region states. Everything here is a pure function of its inputs.
package viewstate

import (
	"sort"

	"github.com/louisbranch/royal.studio/internal/showcase/reveal"
)

// Mode is the closed set of visual modes consumed by the render layer.
type Mode string

const (
	ModeLoading       Mode = "loading"
	ModeRevealedDark  Mode = "revealed-dark"
	ModeRevealedLight Mode = "revealed-light"
)

// Modes lists every mode in a stable order.
func Modes() []Mode {
	return []Mode{ModeLoading, ModeRevealedDark, ModeRevealedLight}
}

// Role says what a watched region drives.
type Role string

const (
	// RoleTheme regions swap the page between dark and light palettes.
	RoleTheme Role = "theme"
	// RoleEntrance regions trigger a one-time staggered entry animation.
	RoleEntrance Role = "entrance"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTheme || r == RoleEntrance
}

// Region is the aggregator's view of one watched region.
type Region struct {
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Intersecting bool   `json:"intersecting"`
	Leaving      bool   `json:"leaving"`
	Entered      bool   `json:"entered"`
}

// View is the derived presentation state.
type View struct {
	Mode        Mode     `json:"mode"`
	ShowLoader  bool     `json:"show_loader"`
	ShowHeading bool     `json:"show_heading"`
	Entered     []string `json:"entered"`
	Leaving     []string `json:"leaving"`
}

// Aggregate maps reveal and region states to a View.
func Aggregate(state reveal.State, regions []Region) View {
	view := View{
		Mode:        ModeRevealedDark,
		ShowLoader:  state.Loading,
		ShowHeading: !state.Loading && state.HeadingVisible,
		Entered:     []string{},
		Leaving:     []string{},
	}
	light := false
	for _, region := range regions {
		if region.Role == RoleTheme && region.Intersecting {
			light = true
		}
		if region.Role == RoleEntrance && region.Intersecting {
			view.Entered = append(view.Entered, region.Name)
		}
		if region.Leaving {
			view.Leaving = append(view.Leaving, region.Name)
		}
	}
	sort.Strings(view.Entered)
	sort.Strings(view.Leaving)

	switch {
	case state.Loading:
		view.Mode = ModeLoading
	case light:
		view.Mode = ModeRevealedLight
	}
	return view
}
