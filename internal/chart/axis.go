package chart

import (
	"math"
)

// LinearAxis maps the data interval [Min, Max] onto the pixel interval
// [PixelMin, PixelMax]. PixelMax may be smaller than PixelMin, as on a
// vertical axis where values grow upwards.
type LinearAxis struct {
	Min, Max           float64
	PixelMin, PixelMax float64
}

// PixelToData converts a pixel coordinate to a data coordinate.
func (a *LinearAxis) PixelToData(px float64) float64 {
	if a.PixelMax == a.PixelMin {
		return a.Min
	}
	return a.Min + (px-a.PixelMin)/(a.PixelMax-a.PixelMin)*(a.Max-a.Min)
}

// DataToPixel converts a data coordinate to the nearest pixel.
func (a *LinearAxis) DataToPixel(v float64) int {
	if a.Max == a.Min {
		return int(math.Round(a.PixelMin))
	}
	return int(math.Round(a.PixelMin + (v-a.Min)/(a.Max-a.Min)*(a.PixelMax-a.PixelMin)))
}

// niceBounds widens [lo, hi] by a 5% margin and rounds outwards to the
// order of magnitude of the span.
func niceBounds(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	span := hi - lo
	pad := span * 0.05
	a := lo - pad
	b := hi + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}
