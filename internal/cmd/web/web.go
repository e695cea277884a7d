// Package web parses web command flags and launches the site server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/royal.studio/internal/platform/cmd"
	"github.com/louisbranch/royal.studio/internal/services/web"
	module "github.com/louisbranch/royal.studio/internal/services/web/module"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr         string  `env:"ROYAL_STUDIO_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	Variant          string  `env:"ROYAL_STUDIO_WEB_VARIANT"`
	ChoreographyFile string  `env:"ROYAL_STUDIO_WEB_CHOREOGRAPHY_FILE"`
	ContentFile      string  `env:"ROYAL_STUDIO_WEB_CONTENT_FILE"`
	LiveRate         float64 `env:"ROYAL_STUDIO_WEB_LIVE_RATE" envDefault:"20"`
	LiveBurst        int     `env:"ROYAL_STUDIO_WEB_LIVE_BURST" envDefault:"40"`
	MaxConnections   int     `env:"ROYAL_STUDIO_WEB_MAX_CONNECTIONS"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "Default choreography variant (the choreography file's default when empty)")
	fs.StringVar(&cfg.ChoreographyFile, "choreography", cfg.ChoreographyFile, "Choreography YAML file (embedded variants when empty)")
	fs.StringVar(&cfg.ContentFile, "content", cfg.ContentFile, "Content YAML file (embedded content when empty)")
	fs.Float64Var(&cfg.LiveRate, "live-rate", cfg.LiveRate, "Inbound live frames per second per connection")
	fs.IntVar(&cfg.LiveBurst, "live-burst", cfg.LiveBurst, "Inbound live frame burst per connection")
	fs.IntVar(&cfg.MaxConnections, "max-connections", cfg.MaxConnections, "Concurrent connection cap (0 for unlimited)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadContent reads the content and choreography files, falling back to the
// embedded defaults for empty paths.
func LoadContent(contentFile, choreographyFile string) (*catalog.Site, *choreography.Set, error) {
	var (
		site *catalog.Site
		set  *choreography.Set
		err  error
	)
	if path := strings.TrimSpace(contentFile); path != "" {
		site, err = catalog.LoadFile(path)
	} else {
		site, err = catalog.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load content: %w", err)
	}
	if path := strings.TrimSpace(choreographyFile); path != "" {
		set, err = choreography.LoadFile(path)
	} else {
		set, err = choreography.Default()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load choreography: %w", err)
	}
	return site, set, nil
}

// Run starts the site server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		site, set, err := LoadContent(cfg.ContentFile, cfg.ChoreographyFile)
		if err != nil {
			return err
		}
		variant := strings.TrimSpace(cfg.Variant)
		if variant == "" {
			variant = set.DefaultName()
		}
		log.Printf("content loaded projects=%d variants=%s default=%s", site.Projects.Len(), strings.Join(set.Names(), ","), variant)

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:       cfg.HTTPAddr,
			Site:           site,
			Choreography:   set,
			Variant:        variant,
			MaxConnections: cfg.MaxConnections,
			Live: module.LiveOptions{
				FramesPerSecond: cfg.LiveRate,
				Burst:           cfg.LiveBurst,
			},
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
