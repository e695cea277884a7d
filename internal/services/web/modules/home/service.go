package home

import (
	"net/url"
	"strings"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	apperrors "github.com/louisbranch/royal.studio/internal/services/web/platform/errors"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/pagerender"
	"github.com/louisbranch/royal.studio/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/royal.studio/internal/services/web/templates"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/reveal"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

type service struct {
	site           *catalog.Site
	choreography   *choreography.Set
	defaultVariant string
}

func newService(deps module.Dependencies) service {
	return service{site: deps.Site, choreography: deps.Choreography, defaultVariant: deps.Variant}
}

// homePage resolves the variant and builds the initial, pre-reveal page.
func (s service) homePage(requested string) (webtemplates.Page, choreography.Variant, error) {
	if s.site == nil || s.choreography == nil {
		return webtemplates.Page{}, choreography.Variant{}, apperrors.E(apperrors.KindUnavailable, "site content is not loaded")
	}
	name := strings.TrimSpace(requested)
	if name == "" {
		name = s.defaultVariant
	}
	variant, err := s.choreography.Get(name)
	if err != nil {
		return webtemplates.Page{}, choreography.Variant{}, apperrors.Wrap(apperrors.KindInvalidInput, "unknown variant "+name, err)
	}

	page := pagerender.SitePage(s.site, s.site.Brand.Studio, s.site.Brand.Tagline)
	page.View = viewstate.Aggregate(reveal.Initial(), nil)
	page.Palette = viewstate.PaletteFor(page.View.Mode)
	page.Live = &webtemplates.Live{
		URL:     routepath.Live + "?variant=" + url.QueryEscape(variant.Name),
		Variant: variant.Name,
	}
	return page, variant, nil
}

type healthStatus struct {
	Status   string   `json:"status"`
	Projects int      `json:"projects"`
	Variants []string `json:"variants"`
}

func (s service) health() healthStatus {
	status := healthStatus{Status: "ok", Variants: []string{}}
	if s.site != nil && s.site.Projects != nil {
		status.Projects = s.site.Projects.Len()
	}
	if s.choreography != nil {
		status.Variants = s.choreography.Names()
	}
	return status
}
