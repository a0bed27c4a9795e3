// Package icons embeds the toolbar icons.
package icons

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

var (
	//go:embed svg/measure-on.svg
	measureOn []byte

	//go:embed svg/measure-off.svg
	measureOff []byte
)

// MeasureOn is shown while the measurement tool is active.
var MeasureOn = fyne.NewStaticResource("measure-on.svg", measureOn)

// MeasureOff is shown while the measurement tool is inactive.
var MeasureOff = fyne.NewStaticResource("measure-off.svg", measureOff)

// Measure returns the icon for the given tool state.
func Measure(active bool) fyne.Resource {
	if active {
		return MeasureOn
	}
	return MeasureOff
}
