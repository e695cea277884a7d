package modules

import (
	"github.com/louisbranch/royal.studio/internal/services/web/modules/home"
	"github.com/louisbranch/royal.studio/internal/services/web/modules/live"
	"github.com/louisbranch/royal.studio/internal/services/web/modules/projects"
)

// Default returns the site's modules in mount order.
func Default(deps Dependencies) []Module {
	return []Module{
		home.New(deps),
		projects.New(deps),
		live.New(deps),
	}
}
