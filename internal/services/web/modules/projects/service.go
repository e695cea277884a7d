package projects

import (
	"errors"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	apperrors "github.com/louisbranch/royal.studio/internal/services/web/platform/errors"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
)

type service struct {
	site    *catalog.Site
	metrics *observability.Metrics
}

func newService(deps module.Dependencies) service {
	return service{site: deps.Site, metrics: deps.Metrics}
}

func (s service) all() ([]catalog.Record, error) {
	if s.site == nil || s.site.Projects == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "site content is not loaded")
	}
	return s.site.Projects.All(), nil
}

// project resolves a raw path segment. The registry is synchronous, so a
// miss is final and never a pending state.
func (s service) project(segment string) (catalog.Record, error) {
	if s.site == nil || s.site.Projects == nil {
		return catalog.Record{}, apperrors.E(apperrors.KindUnavailable, "site content is not loaded")
	}
	record, err := s.site.Projects.LookupSegment(segment)
	s.metrics.Lookup(err == nil)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Record{}, apperrors.Wrap(apperrors.KindNotFound, "project not found", err)
		}
		return catalog.Record{}, err
	}
	return record, nil
}
