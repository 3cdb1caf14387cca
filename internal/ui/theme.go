// Package ui provides the WireCut desktop application.
//
// This file defines a compact Fyne theme for a dense, data-heavy layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// WireCutTheme wraps the default Fyne theme with compact sizing and a
// fixed light/dark variant.
type WireCutTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool // use the variant the system asks for
}

// NewWireCutTheme creates a theme from a config value: "light", "dark" or
// anything else for the system default.
func NewWireCutTheme(name string) *WireCutTheme {
	t := &WireCutTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between "light", "dark" and "system".
func (t *WireCutTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.follow = theme.VariantLight, false
	case "dark":
		t.variant, t.follow = theme.VariantDark, false
	default:
		t.follow = true
	}
}

// Color delegates to the base theme with the chosen variant.
func (t *WireCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.follow {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *WireCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *WireCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *WireCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
