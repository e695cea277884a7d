package live

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	apperrors "github.com/louisbranch/royal.studio/internal/services/web/platform/errors"
	"github.com/louisbranch/royal.studio/internal/services/web/platform/observability"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
	"github.com/louisbranch/royal.studio/internal/showcase/clock"
)

const (
	defaultFramesPerSecond = 20
	defaultBurst           = 40
)

type service struct {
	choreography   *choreography.Set
	defaultVariant string
	scheduler      clock.Scheduler
	metrics        *observability.Metrics
	limit          rate.Limit
	burst          int
	newID          func() string
}

func newService(deps module.Dependencies) service {
	sched := deps.Scheduler
	if sched == nil {
		sched = clock.NewReal()
	}
	fps := deps.Live.FramesPerSecond
	if fps <= 0 {
		fps = defaultFramesPerSecond
	}
	burst := deps.Live.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	return service{
		choreography:   deps.Choreography,
		defaultVariant: deps.Variant,
		scheduler:      sched,
		metrics:        deps.Metrics,
		limit:          rate.Limit(fps),
		burst:          burst,
		newID:          uuid.NewString,
	}
}

func (s service) variant(requested string) (choreography.Variant, error) {
	if s.choreography == nil {
		return choreography.Variant{}, apperrors.EK(apperrors.KindUnavailable, keyUnavailable, "choreography is not loaded")
	}
	name := strings.TrimSpace(requested)
	if name == "" {
		name = s.defaultVariant
	}
	v, err := s.choreography.Get(name)
	if err != nil {
		return choreography.Variant{}, apperrors.EK(apperrors.KindInvalidInput, keyUnknownVariant, "unknown variant "+name)
	}
	return v, nil
}

func (s service) limiter() *rate.Limiter {
	return rate.NewLimiter(s.limit, s.burst)
}
