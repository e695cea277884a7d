// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/clock"
)

// Dependencies carries the shared inputs modules are built from.
type Dependencies struct {
	Site         *catalog.Site
	Choreography *choreography.Set
	// Variant names the choreography pages render with by default.
	Variant   string
	Scheduler clock.Scheduler
	Metrics   *observability.Metrics
	Live      LiveOptions
}

// LiveOptions bounds the inbound frame rate of one live connection.
type LiveOptions struct {
	FramesPerSecond float64
	Burst           int
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
