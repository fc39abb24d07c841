package model

import (
	"errors"
	"fmt"

	"github.com/piwi3910/pcbpanel/internal/geom"
)

// ErrMalformedInput is returned when panel settings or the source board
// cannot produce a valid layout. It is checked before any geometry is emitted.
var ErrMalformedInput = errors.New("malformed input")

// TabMode selects how tab positions are chosen along each board edge.
type TabMode string

const (
	TabModeEvenly TabMode = "evenly" // count tabs at length/(count+1) intervals
	TabModeAround TabMode = "around" // each tab centred in an equal sub-span
	TabModeAuto   TabMode = "auto"   // distribute over the straight parts of the edge
)

// TabModes lists the supported modes in display order.
var TabModes = []TabMode{TabModeEvenly, TabModeAround, TabModeAuto}

func (m TabMode) String() string { return string(m) }

// ParseTabMode converts a user supplied string into a TabMode.
func ParseTabMode(s string) (TabMode, error) {
	for _, m := range TabModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab mode %q", ErrMalformedInput, s)
}

// PanelSettings holds the configuration of one panelization run.
type PanelSettings struct {
	Source string `json:"source"` // Path of the source board outline

	// Frame and spacing
	OutlineWidth geom.Length `json:"outline_width"` // Picture-frame rail width
	OutlineHole  geom.Length `json:"outline_hole"`  // Mounting hole diameter in the frame
	SpacingWidth geom.Length `json:"spacing_width"` // Milled gap between boards and frame
	TabWidth     geom.Length `json:"tab_width"`     // Breakaway tab width

	// Grid
	BoardsX int `json:"boards_x"`
	BoardsY int `json:"boards_y"`

	// Tabs per board edge: TabsX along the horizontal edges, TabsY along the vertical ones
	TabsX   int     `json:"tabs_x"`
	TabsY   int     `json:"tabs_y"`
	TabMode TabMode `json:"tab_mode"`

	TrimSilkscreen bool `json:"trim_silkscreen"`

	// Fiducials; both zero disables them
	FiducialCopper geom.Length `json:"fiducial_copper"`
	FiducialMask   geom.Length `json:"fiducial_mask"`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() PanelSettings {
	return PanelSettings{
		OutlineWidth:   geom.FromMM(5),
		OutlineHole:    geom.FromMM(2.5),
		SpacingWidth:   geom.FromMM(2),
		TabWidth:       geom.FromMM(2.5),
		BoardsX:        1,
		BoardsY:        1,
		TabsX:          1,
		TabsY:          1,
		TabMode:        TabModeEvenly,
		TrimSilkscreen: false,
		FiducialCopper: geom.FromMM(1),
		FiducialMask:   geom.FromMM(2),
	}
}

// FiducialsEnabled reports whether fiducial targets should be placed.
func (s PanelSettings) FiducialsEnabled() bool {
	return s.FiducialCopper > 0 || s.FiducialMask > 0
}

// Validate checks the settings for values the layout engine cannot handle.
// All errors wrap ErrMalformedInput.
func (s PanelSettings) Validate() error {
	widths := []struct {
		name  string
		value geom.Length
	}{
		{"outline width", s.OutlineWidth},
		{"outline hole", s.OutlineHole},
		{"spacing width", s.SpacingWidth},
		{"tab width", s.TabWidth},
	}
	for _, w := range widths {
		if w.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %.3f mm", ErrMalformedInput, w.name, w.value.MM())
		}
	}

	if s.BoardsX < 1 || s.BoardsY < 1 {
		return fmt.Errorf("%w: need at least one board in each direction, got %dx%d", ErrMalformedInput, s.BoardsX, s.BoardsY)
	}
	if s.TabsX < 0 || s.TabsY < 0 {
		return fmt.Errorf("%w: tab counts cannot be negative, got %d/%d", ErrMalformedInput, s.TabsX, s.TabsY)
	}
	if _, err := ParseTabMode(string(s.TabMode)); err != nil {
		return err
	}

	if s.FiducialsEnabled() {
		if s.FiducialCopper <= 0 || s.FiducialMask <= 0 {
			return fmt.Errorf("%w: fiducial copper and mask must both be set", ErrMalformedInput)
		}
		if s.FiducialCopper > s.FiducialMask {
			return fmt.Errorf("%w: fiducial copper (%.3f mm) exceeds mask opening (%.3f mm)",
				ErrMalformedInput, s.FiducialCopper.MM(), s.FiducialMask.MM())
		}
	}
	return nil
}
