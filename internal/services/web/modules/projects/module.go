// Package projects serves the project index and detail pages.
package projects

import (
	"net/http"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
)

// Module provides project routes.
type Module struct {
	deps module.Dependencies
}

// New returns a projects module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "projects"
}

// Mount wires project routes under the projects prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.deps)))
	return module.Mount{Prefix: routepath.ProjectPrefix, Handler: mux}, nil
}
