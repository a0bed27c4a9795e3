package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"chart-measure/pkg/colorutil"
)

// ChartTheme tints the default theme with the measurement color so the
// active toolbar button and checked menu entries match the overlay.
type ChartTheme struct {
	Accent color.RGBA
}

var _ fyne.Theme = (*ChartTheme)(nil)

func (t *ChartTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		if t.Accent == colorutil.Black || t.Accent == (color.RGBA{}) {
			return theme.DefaultTheme().Color(name, variant)
		}
		return t.Accent
	case theme.ColorNameSelection:
		c := colorutil.Brighter(t.Accent)
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x80}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ChartTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ChartTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ChartTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
