package otel

import (
	"context"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), "test-service", Config{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	t.Parallel()

	cfg := Config{Endpoint: "http://localhost:4318", Enabled: false}
	if cfg.Active() {
		t.Fatal("Active() = true for disabled config")
	}
	shutdown, err := Setup(context.Background(), "test-service", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so nothing is exported.
	cfg := Config{Endpoint: "http://192.0.2.1:4318", Enabled: true, SampleRatio: 0.5}
	shutdown, err := Setup(context.Background(), "test-service", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ROYAL_STUDIO_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("ROYAL_STUDIO_OTEL_ENABLED", "")
	t.Setenv("ROYAL_STUDIO_OTEL_SAMPLE_RATIO", "0.25")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	if !cfg.Active() || cfg.SampleRatio != 0.25 {
		t.Fatalf("cfg = %+v, want active with 0.25 ratio", cfg)
	}
}

func TestSamplerBounds(t *testing.T) {
	t.Parallel()

	if got := sampler(1).Description(); got != "AlwaysOnSampler" {
		t.Fatalf("sampler(1) = %q", got)
	}
	if got := sampler(0).Description(); got != "AlwaysOffSampler" {
		t.Fatalf("sampler(0) = %q", got)
	}
}
