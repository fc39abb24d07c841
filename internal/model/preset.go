package model

import (
	"time"

	"github.com/google/uuid"
)

// PanelPreset is a named, reusable set of panel settings. The source board
// is not part of a preset.
type PanelPreset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Settings    PanelSettings `json:"settings"`
}

// NewPanelPreset captures settings under a name. The source path is cleared.
func NewPanelPreset(name, description string, settings PanelSettings) PanelPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	settings.Source = ""
	return PanelPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    settings,
	}
}

// Apply returns the preset's settings for the given source board.
func (p PanelPreset) Apply(source string) PanelSettings {
	s := p.Settings
	s.Source = source
	return s
}

// PresetStore holds a collection of panel presets.
type PresetStore struct {
	Presets []PanelPreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []PanelPreset{},
	}
}

// Add adds a preset to the store, replacing any preset with the same name.
func (ps *PresetStore) Add(p PanelPreset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *PanelPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *PanelPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
