package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PanelTheme is the default Fyne theme with a fixed light or dark variant
// and compact sizes, so that the panel drawing gets most of the window.
type PanelTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool
}

// NewPanelTheme returns a theme for the named variant: "light", "dark" or
// anything else to follow the system setting.
func NewPanelTheme(variant string) *PanelTheme {
	t := &PanelTheme{base: theme.DefaultTheme()}
	switch strings.ToLower(variant) {
	case "light":
		t.variant = theme.VariantLight
	case "dark":
		t.variant = theme.VariantDark
	default:
		t.follow = true
	}
	return t
}

func (t *PanelTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.follow {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *PanelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PanelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *PanelTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
