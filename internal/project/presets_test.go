package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	store := model.NewPresetStore()
	s := model.DefaultSettings()
	s.OutlineWidth = geom.FromMM(7)
	store.Add(model.NewPanelPreset("Wide rail", "7mm frame", s))
	store.Add(model.NewPanelPreset("Default", "", model.DefaultSettings()))

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded.Presets))
	}
	p := loaded.FindByName("Wide rail")
	if p == nil {
		t.Fatal("expected to find 'Wide rail'")
	}
	if p.Settings.OutlineWidth != geom.FromMM(7) {
		t.Errorf("expected outline width 7mm, got %f", p.Settings.OutlineWidth.MM())
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Presets == nil || len(store.Presets) != 0 {
		t.Errorf("expected empty store, got %+v", store)
	}
}

func TestExportImportPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	preset := model.NewPanelPreset("Shared", "from a colleague", model.DefaultSettings())

	if err := ExportPreset(path, preset); err != nil {
		t.Fatalf("ExportPreset failed: %v", err)
	}
	imported, err := ImportPreset(path)
	if err != nil {
		t.Fatalf("ImportPreset failed: %v", err)
	}
	if imported.Name != "Shared" || imported.ID != preset.ID {
		t.Errorf("unexpected preset %+v", imported)
	}
}

func TestImportPresetNoName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(`{"description":"anonymous"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportPreset(path); err == nil {
		t.Error("expected error for preset without name")
	}
}
