// Package live serves the WebSocket endpoint that runs one view session per
// connection.
package live

import (
	"net/http"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
)

// Module provides the live view session route.
type Module struct {
	deps module.Dependencies
}

// New returns a live module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "live"
}

// Mount wires the live endpoint.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps)))
	return module.Mount{Prefix: routepath.Live, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Live, h.handleLive)
}
