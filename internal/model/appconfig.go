package model

import "github.com/piwi3910/pcbpanel/internal/geom"

// maxRecentSources bounds the recent source list kept in the config.
const maxRecentSources = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every new panel before flags are read
	Defaults PanelSettings `json:"defaults"`

	// Stroke width given to outline segments imported from DXF, which
	// carries no width of its own
	DXFEdgeWidth geom.Length `json:"dxf_edge_width"`

	// Output formats written by the build command: dxf, pdf, svg, xlsx
	OutputFormats []string `json:"output_formats"`

	RecentSources []string `json:"recent_sources"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Defaults:      DefaultSettings(),
		DXFEdgeWidth:  geom.FromMM(0.1),
		OutputFormats: []string{"dxf", "pdf"},
		RecentSources: []string{},
	}
}

// AddRecentSource moves path to the front of the recent list, dropping
// duplicates and trimming the list to its maximum length.
func (c *AppConfig) AddRecentSource(path string) {
	recent := []string{path}
	for _, p := range c.RecentSources {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentSources {
		recent = recent[:maxRecentSources]
	}
	c.RecentSources = recent
}
