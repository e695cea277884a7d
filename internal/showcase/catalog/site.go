package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Brand carries the studio's identity copy.
type Brand struct {
	Logo      string `yaml:"logo" validate:"required"`
	Studio    string `yaml:"studio" validate:"required"`
	Tagline   string `yaml:"tagline" validate:"required"`
	Loader    string `yaml:"loader" validate:"required"`
	HeroVideo string `yaml:"hero_video" validate:"required"`
}

// Section is one narrative block of the about showcase.
type Section struct {
	Title   string `yaml:"title" validate:"required"`
	Text    string `yaml:"text" validate:"required"`
	Image   string `yaml:"image" validate:"required"`
	Reverse bool   `yaml:"reverse"`
}

// FeaturedItem is one card in the featured spaces gallery.
type FeaturedItem struct {
	ID          int    `yaml:"id" validate:"gt=0"`
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Image       string `yaml:"image" validate:"required"`
}

// Featured is the gallery block at the end of the showcase.
type Featured struct {
	Eyebrow string         `yaml:"eyebrow"`
	Heading string         `yaml:"heading" validate:"required"`
	Items   []FeaturedItem `yaml:"items" validate:"min=1,dive"`
}

// Footer carries the closing brand and contact block.
type Footer struct {
	Blurb     string   `yaml:"blurb"`
	Location  string   `yaml:"location"`
	Email     string   `yaml:"email" validate:"omitempty,email"`
	Copyright string   `yaml:"copyright"`
	Legal     []string `yaml:"legal"`
}

type document struct {
	Brand    Brand     `yaml:"brand"`
	Menu     []string  `yaml:"menu" validate:"dive,required"`
	Sections []Section `yaml:"sections" validate:"dive"`
	Featured Featured  `yaml:"featured"`
	Projects []Record  `yaml:"projects"`
	Footer   Footer    `yaml:"footer"`
}

// Site is the complete, immutable content of the website.
type Site struct {
	Brand    Brand
	Menu     []string
	Sections []Section
	Featured Featured
	Footer   Footer
	Projects *Registry
}

// Load parses and validates a content document.
func Load(data []byte) (*Site, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	seen := make(map[int]bool, len(doc.Featured.Items))
	for _, item := range doc.Featured.Items {
		if seen[item.ID] {
			return nil, fmt.Errorf("validate content: duplicate featured id %d", item.ID)
		}
		seen[item.ID] = true
	}
	projects, err := New(doc.Projects)
	if err != nil {
		return nil, fmt.Errorf("build project registry: %w", err)
	}
	return &Site{
		Brand:    doc.Brand,
		Menu:     doc.Menu,
		Sections: doc.Sections,
		Featured: doc.Featured,
		Footer:   doc.Footer,
		Projects: projects,
	}, nil
}

// LoadFile reads and parses a content document from disk.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Load(data)
}

var (
	defaultOnce sync.Once
	defaultSite *Site
	defaultErr  error
)

// Default returns the embedded site content.
func Default() (*Site, error) {
	defaultOnce.Do(func() {
		defaultSite, defaultErr = Load(defaultContent)
	})
	return defaultSite, defaultErr
}
