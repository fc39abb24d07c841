package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
	"github.com/piwi3910/pcbpanel/internal/project"
)

// addPanelFlags registers the flags that override panel settings.
func addPanelFlags(cmd *cobra.Command) {
	d := model.DefaultSettings()
	f := cmd.Flags()
	f.String("preset", "", "start from a stored preset")
	f.String("settings", "", "start from a settings JSON file")
	f.Int("boards-x", d.BoardsX, "boards per row")
	f.Int("boards-y", d.BoardsY, "boards per column")
	f.Int("tabs-x", d.TabsX, "tabs on each horizontal board edge")
	f.Int("tabs-y", d.TabsY, "tabs on each vertical board edge")
	f.String("tab-mode", d.TabMode.String(), "tab placement: evenly, around or auto")
	f.Float64("outline-width", d.OutlineWidth.MM(), "frame rail width in mm")
	f.Float64("outline-hole", d.OutlineHole.MM(), "frame hole diameter in mm")
	f.Float64("spacing", d.SpacingWidth.MM(), "gap between boards in mm")
	f.Float64("tab-width", d.TabWidth.MM(), "tab width in mm")
	f.Bool("trim-silkscreen", d.TrimSilkscreen, "drop silkscreen outside the board")
	f.Float64("fiducial-copper", d.FiducialCopper.MM(), "fiducial copper diameter in mm, 0 disables")
	f.Float64("fiducial-mask", d.FiducialMask.MM(), "fiducial mask opening in mm, 0 disables")
	f.Float64("edge-width", model.DefaultAppConfig().DXFEdgeWidth.MM(), "stroke width given to DXF outline segments in mm")
}

// panelSettings resolves the effective settings: the stored defaults, then
// a preset or settings file, then any explicitly set flag, env var or
// config key.
func panelSettings() (model.PanelSettings, error) {
	s := appCfg.Defaults

	if name := viper.GetString("preset"); name != "" {
		store, err := project.LoadPresets(project.DefaultPresetPath())
		if err != nil {
			return s, fmt.Errorf("load presets: %w", err)
		}
		p := store.FindByName(name)
		if p == nil {
			return s, fmt.Errorf("unknown preset %q", name)
		}
		s = p.Apply(s.Source)
	}
	if path := viper.GetString("settings"); path != "" {
		loaded, err := project.LoadSettings(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	ints := map[string]*int{
		"boards-x": &s.BoardsX,
		"boards-y": &s.BoardsY,
		"tabs-x":   &s.TabsX,
		"tabs-y":   &s.TabsY,
	}
	for key, dst := range ints {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}

	lengths := map[string]*geom.Length{
		"outline-width":   &s.OutlineWidth,
		"outline-hole":    &s.OutlineHole,
		"spacing":         &s.SpacingWidth,
		"tab-width":       &s.TabWidth,
		"fiducial-copper": &s.FiducialCopper,
		"fiducial-mask":   &s.FiducialMask,
	}
	for key, dst := range lengths {
		if viper.IsSet(key) {
			*dst = geom.FromMM(viper.GetFloat64(key))
		}
	}

	if viper.IsSet("trim-silkscreen") {
		s.TrimSilkscreen = viper.GetBool("trim-silkscreen")
	}
	if viper.IsSet("tab-mode") {
		mode, err := model.ParseTabMode(viper.GetString("tab-mode"))
		if err != nil {
			return s, err
		}
		s.TabMode = mode
	}
	return s, s.Validate()
}

// edgeWidth returns the DXF import stroke width.
func edgeWidth() geom.Length {
	if viper.IsSet("edge-width") {
		return geom.FromMM(viper.GetFloat64("edge-width"))
	}
	return appCfg.DXFEdgeWidth
}
