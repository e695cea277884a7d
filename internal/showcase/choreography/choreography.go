// Package choreography loads the named timing and threshold variants that
// configure a page visit's reveal controller and region watchers.
package choreography

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/royal.studio/internal/showcase/intersect"
	"github.com/louisbranch/royal.studio/internal/showcase/reveal"
	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

//go:embed variants.yaml
var defaultVariants []byte

// ErrUnknownVariant is returned when a variant name is not configured.
var ErrUnknownVariant = errors.New("unknown choreography variant")

// RegionSpec configures one watched region.
type RegionSpec struct {
	Name       string         `yaml:"name" validate:"required"`
	Role       viewstate.Role `yaml:"role" validate:"oneof=theme entrance"`
	Thresholds []float64      `yaml:"thresholds" validate:"min=1,dive,gte=0,lte=1"`
	Once       bool           `yaml:"once"`
}

// Variant is one named choreography.
type Variant struct {
	Name             string         `yaml:"name" validate:"required"`
	LoadingDelay     time.Duration  `yaml:"loading_delay"`
	HeadingHideDelay *time.Duration `yaml:"heading_hide_delay"`
	Regions          []RegionSpec   `yaml:"regions" validate:"unique=Name,dive"`
}

// RevealConfig adapts the variant's timings for reveal.New.
func (v Variant) RevealConfig() reveal.Config {
	cfg := reveal.Config{LoadingDelay: v.LoadingDelay}
	if v.HeadingHideDelay != nil {
		cfg.HeadingHideDelay = reveal.Delay(*v.HeadingHideDelay)
	}
	return cfg
}

// WatcherConfigs adapts the variant's regions for intersect.NewWatcher.
func (v Variant) WatcherConfigs() []intersect.Config {
	out := make([]intersect.Config, 0, len(v.Regions))
	for _, region := range v.Regions {
		out = append(out, intersect.Config{
			Region:     region.Name,
			Thresholds: append([]float64(nil), region.Thresholds...),
			Once:       region.Once,
		})
	}
	return out
}

// Region returns the spec for a named region.
func (v Variant) Region(name string) (RegionSpec, bool) {
	for _, region := range v.Regions {
		if region.Name == name {
			return region, true
		}
	}
	return RegionSpec{}, false
}

type document struct {
	Default  string    `yaml:"default" validate:"required"`
	Variants []Variant `yaml:"variants" validate:"min=1,unique=Name,dive"`
}

// Set is a validated collection of variants.
type Set struct {
	defaultName string
	variants    map[string]Variant
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load parses and validates a variants document.
func Load(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode choreography: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validate choreography: %w", err)
	}
	set := &Set{
		defaultName: strings.TrimSpace(doc.Default),
		variants:    make(map[string]Variant, len(doc.Variants)),
	}
	for _, variant := range doc.Variants {
		if err := variant.RevealConfig().Validate(); err != nil {
			return nil, fmt.Errorf("validate choreography %q: %w", variant.Name, err)
		}
		for _, cfg := range variant.WatcherConfigs() {
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("validate choreography %q: %w", variant.Name, err)
			}
		}
		set.variants[variant.Name] = variant
	}
	if _, ok := set.variants[set.defaultName]; !ok {
		return nil, fmt.Errorf("validate choreography: default %q: %w", set.defaultName, ErrUnknownVariant)
	}
	return set, nil
}

// LoadFile reads and parses a variants document from disk.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read choreography file: %w", err)
	}
	return Load(data)
}

// Default parses the embedded variants document.
func Default() (*Set, error) {
	return Load(defaultVariants)
}

// Get returns the named variant. An empty name selects the default.
func (s *Set) Get(name string) (Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultName
	}
	variant, ok := s.variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return variant, nil
}

// DefaultName returns the name of the default variant.
func (s *Set) DefaultName() string {
	return s.defaultName
}

// Names lists the configured variants alphabetically.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.variants))
	for name := range s.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
