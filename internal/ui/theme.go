// Package ui provides the PillBoard desktop application.
//
// This file defines a compact Fyne theme that leaves most of the window to the board.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PillBoardTheme wraps the default Fyne theme with compact sizing and an
// optional fixed light/dark variant.
type PillBoardTheme struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	followSystem bool
}

// NewPillBoardTheme creates a theme that follows the system variant.
func NewPillBoardTheme() *PillBoardTheme {
	return &PillBoardTheme{base: theme.DefaultTheme(), followSystem: true}
}

// NewPillBoardThemeWithVariant creates a theme pinned to a light or dark variant.
func NewPillBoardThemeWithVariant(variant fyne.ThemeVariant) *PillBoardTheme {
	return &PillBoardTheme{base: theme.DefaultTheme(), variant: variant}
}

// themeFor maps a config theme name to a theme. Unknown names follow the system.
func themeFor(name string) *PillBoardTheme {
	switch name {
	case "light":
		return NewPillBoardThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewPillBoardThemeWithVariant(theme.VariantDark)
	default:
		return NewPillBoardTheme()
	}
}

// Color delegates to the base theme, using the pinned variant if there is one.
func (t *PillBoardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.followSystem {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PillBoardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PillBoardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PillBoardTheme) Size(name fyne.ThemeSizeName) float32 {
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
