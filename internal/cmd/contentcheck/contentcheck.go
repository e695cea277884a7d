// Package contentcheck validates content and choreography documents and
// prints a summary of what the site would serve.
package contentcheck

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	webcmd "github.com/louisbranch/royal.studio/internal/cmd/web"
	entrypoint "github.com/louisbranch/royal.studio/internal/platform/cmd"
	"github.com/louisbranch/royal.studio/internal/showcase/catalog"
	"github.com/louisbranch/royal.studio/internal/showcase/choreography"
)

// Config holds content check inputs.
type Config struct {
	ContentFile      string `env:"ROYAL_STUDIO_WEB_CONTENT_FILE"`
	ChoreographyFile string `env:"ROYAL_STUDIO_WEB_CHOREOGRAPHY_FILE"`
	Variant          string `env:"ROYAL_STUDIO_WEB_VARIANT"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ContentFile, "content", cfg.ContentFile, "Content YAML file (embedded content when empty)")
	fs.StringVar(&cfg.ChoreographyFile, "choreography", cfg.ChoreographyFile, "Choreography YAML file (embedded variants when empty)")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "Variant the site will default to")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads both documents and writes a summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceContentCheck, func(context.Context) error {
		site, set, err := webcmd.LoadContent(cfg.ContentFile, cfg.ChoreographyFile)
		if err != nil {
			return err
		}
		if _, err := set.Get(cfg.Variant); err != nil {
			return fmt.Errorf("default variant: %w", err)
		}
		writeSummary(out, site, set)
		return nil
	})
}

func writeSummary(out io.Writer, site *catalog.Site, set *choreography.Set) {
	fmt.Fprintf(out, "brand: %s %s\n", site.Brand.Logo, site.Brand.Studio)
	fmt.Fprintf(out, "menu: %s\n", strings.Join(site.Menu, ", "))
	fmt.Fprintf(out, "projects: %d\n", site.Projects.Len())
	for _, record := range site.Projects.All() {
		fmt.Fprintf(out, "  %d %s (%d overlays)\n", record.ID, record.Title, len(record.Overlays))
	}
	fmt.Fprintf(out, "variants: %d (default %s)\n", len(set.Names()), set.DefaultName())
	for _, name := range set.Names() {
		variant, err := set.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "  %s loading=%s regions=%d\n", name, variant.LoadingDelay, len(variant.Regions))
	}
}
