package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/model"
)

// SaveSettings writes panel settings as JSON. Lengths are stored in mm.
func SaveSettings(path string, settings model.PanelSettings) error {
	return writeJSON(path, settings)
}

// LoadSettings reads panel settings from path. A missing file yields
// DefaultSettings; fields absent from the file keep their default values.
// The loaded settings are validated.
func LoadSettings(path string) (model.PanelSettings, error) {
	settings := model.DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return model.PanelSettings{}, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.PanelSettings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return model.PanelSettings{}, err
	}
	return settings, nil
}

// Manifest records how a panel was built, written next to the exported
// files.
type Manifest struct {
	Settings model.PanelSettings `json:"settings"`
	Result   engine.Result       `json:"result"`
	Outputs  []string            `json:"outputs"`
}

// SaveManifest writes a build manifest as JSON.
func SaveManifest(path string, m Manifest) error {
	if m.Outputs == nil {
		m.Outputs = []string{}
	}
	return writeJSON(path, m)
}

// LoadManifest reads a build manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}
