package choreography

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/royal.studio/internal/showcase/viewstate"
)

func TestDefaultVariants(t *testing.T) {
	t.Parallel()

	set, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if set.DefaultName() != "hero" {
		t.Fatalf("default = %q, want hero", set.DefaultName())
	}
	if got := strings.Join(set.Names(), ","); got != "classic,hero" {
		t.Fatalf("names = %q, want classic,hero", got)
	}

	hero, err := set.Get("")
	if err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
	cfg := hero.RevealConfig()
	if cfg.LoadingDelay != time.Second {
		t.Fatalf("hero loading delay = %s, want 1s", cfg.LoadingDelay)
	}
	if cfg.HeadingHideDelay == nil || *cfg.HeadingHideDelay != 4*time.Second {
		t.Fatalf("hero heading delay = %v, want 4s", cfg.HeadingHideDelay)
	}
	featured, ok := hero.Region("featured")
	if !ok || featured.Role != viewstate.RoleTheme || len(featured.Thresholds) != 2 {
		t.Fatalf("featured region = %+v, ok=%v", featured, ok)
	}

	classic, err := set.Get("classic")
	if err != nil {
		t.Fatalf("Get(classic) error = %v", err)
	}
	if got := classic.RevealConfig(); got.LoadingDelay != 2200*time.Millisecond || got.HeadingHideDelay != nil {
		t.Fatalf("classic reveal = %+v, want 2.2s without heading hide", got)
	}
}

func TestWatcherConfigs(t *testing.T) {
	t.Parallel()

	v := Variant{Regions: []RegionSpec{
		{Name: "featured", Role: viewstate.RoleTheme, Thresholds: []float64{0.1, 0.2}},
		{Name: "gallery", Role: viewstate.RoleEntrance, Thresholds: []float64{0.25}, Once: true},
	}}
	cfgs := v.WatcherConfigs()
	if len(cfgs) != 2 || cfgs[1].Region != "gallery" || !cfgs[1].Once {
		t.Fatalf("configs = %+v", cfgs)
	}
	cfgs[0].Thresholds[0] = 0.9
	if v.Regions[0].Thresholds[0] != 0.1 {
		t.Fatal("WatcherConfigs shares threshold storage with the variant")
	}
}

func TestGetUnknownVariant(t *testing.T) {
	t.Parallel()

	set, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if _, err := set.Get("baroque"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("Get(baroque) error = %v, want %v", err, ErrUnknownVariant)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "variants: ["},
		{name: "missing default", doc: "default: gone\nvariants:\n  - name: hero\n    loading_delay: 1s\n"},
		{name: "bad role", doc: "default: hero\nvariants:\n  - name: hero\n    regions:\n      - {name: a, role: sparkle, thresholds: [0.2]}\n"},
		{name: "threshold range", doc: "default: hero\nvariants:\n  - name: hero\n    regions:\n      - {name: a, role: theme, thresholds: [1.2]}\n"},
		{name: "no thresholds", doc: "default: hero\nvariants:\n  - name: hero\n    regions:\n      - {name: a, role: theme}\n"},
		{name: "duplicate region", doc: "default: hero\nvariants:\n  - name: hero\n    regions:\n      - {name: a, role: theme, thresholds: [0.2]}\n      - {name: a, role: entrance, thresholds: [0.2]}\n"},
		{name: "duplicate variant", doc: "default: hero\nvariants:\n  - name: hero\n  - name: hero\n"},
		{name: "negative delay", doc: "default: hero\nvariants:\n  - name: hero\n    loading_delay: -1s\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Load([]byte(tc.doc)); err == nil {
				t.Fatal("Load() error = nil, want error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "variants.yaml")
	doc := "default: quick\nvariants:\n  - name: quick\n    loading_delay: 250ms\n    heading_hide_delay: 1s\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write variants: %v", err)
	}
	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	quick, err := set.Get("quick")
	if err != nil {
		t.Fatalf("Get(quick) error = %v", err)
	}
	if quick.LoadingDelay != 250*time.Millisecond {
		t.Fatalf("loading delay = %s, want 250ms", quick.LoadingDelay)
	}
}
