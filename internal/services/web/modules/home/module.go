// Package home serves the landing page and the health probe.
package home

import (
	"net/http"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
)

// Module provides the landing page routes.
type Module struct {
	deps module.Dependencies
}

// New returns a home module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "home"
}

// Mount wires the landing page under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps)))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
