package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.Defaults != defaults {
		t.Errorf("defaults mismatch: config=%+v settings=%+v", cfg.Defaults, defaults)
	}
	if cfg.DXFEdgeWidth <= 0 {
		t.Errorf("expected positive DXF edge width, got %d", cfg.DXFEdgeWidth)
	}
	if cfg.RecentSources == nil {
		t.Error("RecentSources should not be nil")
	}
}

func TestAddRecentSource(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentSource("a.dxf")
	cfg.AddRecentSource("b.dxf")
	cfg.AddRecentSource("a.dxf")

	if len(cfg.RecentSources) != 2 {
		t.Fatalf("expected 2 recent sources, got %d", len(cfg.RecentSources))
	}
	if cfg.RecentSources[0] != "a.dxf" || cfg.RecentSources[1] != "b.dxf" {
		t.Errorf("unexpected order: %v", cfg.RecentSources)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentSource(fmt.Sprintf("board%d.dxf", i))
	}
	if len(cfg.RecentSources) != maxRecentSources {
		t.Errorf("expected list trimmed to %d, got %d", maxRecentSources, len(cfg.RecentSources))
	}
	if cfg.RecentSources[0] != "board19.dxf" {
		t.Errorf("expected most recent first, got %s", cfg.RecentSources[0])
	}
}
