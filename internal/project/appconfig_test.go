package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DXFEdgeWidth = geom.FromMM(0.15)
	cfg.OutputFormats = []string{"dxf", "svg", "xlsx"}
	cfg.Defaults.TabWidth = geom.FromMM(3)
	cfg.RecentSources = []string{"/tmp/a.dxf", "/tmp/b.dxf"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DXFEdgeWidth != geom.FromMM(0.15) {
		t.Errorf("expected DXFEdgeWidth=0.15mm, got %f", loaded.DXFEdgeWidth.MM())
	}
	if len(loaded.OutputFormats) != 3 || loaded.OutputFormats[2] != "xlsx" {
		t.Errorf("unexpected output formats %v", loaded.OutputFormats)
	}
	if loaded.Defaults.TabWidth != geom.FromMM(3) {
		t.Errorf("expected default tab width 3mm, got %f", loaded.Defaults.TabWidth.MM())
	}
	if len(loaded.RecentSources) != 2 {
		t.Errorf("expected 2 recent sources, got %d", len(loaded.RecentSources))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DXFEdgeWidth != defaults.DXFEdgeWidth {
		t.Errorf("expected default edge width %f, got %f", defaults.DXFEdgeWidth.MM(), cfg.DXFEdgeWidth.MM())
	}
	if cfg.Defaults != model.DefaultSettings() {
		t.Errorf("expected default panel settings, got %+v", cfg.Defaults)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"dxf_edge_width":0.2,"recent_sources":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DXFEdgeWidth != geom.FromMM(0.2) {
		t.Errorf("expected edge width 0.2mm, got %f", cfg.DXFEdgeWidth.MM())
	}
	if cfg.RecentSources == nil {
		t.Error("RecentSources should not be nil after loading")
	}
	if len(cfg.OutputFormats) == 0 {
		t.Error("expected default output formats to be kept")
	}
}
