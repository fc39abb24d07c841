package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/pcbpanel/internal/model"
)

// DefaultPresetPath returns the default file path for the preset store.
// This is located at ~/.pcbpanel/presets.json.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	return writeJSON(path, store)
}

// LoadPresets reads the preset store from a JSON file.
// Returns an empty store if the file does not exist.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}

	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []model.PanelPreset{}
	}
	return store, nil
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, preset model.PanelPreset) error {
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset from a JSON file.
func ImportPreset(path string) (model.PanelPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PanelPreset{}, err
	}

	var preset model.PanelPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.PanelPreset{}, err
	}
	if preset.Name == "" {
		return model.PanelPreset{}, errors.New("imported preset has no name")
	}
	if err := preset.Settings.Validate(); err != nil {
		return model.PanelPreset{}, err
	}
	return preset, nil
}
