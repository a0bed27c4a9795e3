// Package chart lays out a time-series chart: the plot box, the axis
// mappings shared by everything drawn on the plot, and the rendered
// background produced with go-chart.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"sort"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chart-measure/internal/numfmt"
	"chart-measure/internal/series"
	"chart-measure/pkg/colorutil"
	"chart-measure/pkg/geometry"
)

// Padding is the space between the widget edge and the plot box.
type Padding struct {
	Top, Left, Right, Bottom int
}

// DefaultPadding leaves room for the axis labels.
var DefaultPadding = Padding{Top: 16, Left: 72, Right: 16, Bottom: 28}

// Chart holds one series and its layout.
type Chart struct {
	series    *series.Series
	format    numfmt.Format
	padding   Padding
	lineColor color.RGBA

	size geometry.Size
	box  geometry.RectInt
	x, y LinearAxis
}

// New creates an empty chart that formats values with format.
func New(format numfmt.Format) *Chart {
	c := &Chart{
		format:    format,
		padding:   DefaultPadding,
		lineColor: colorutil.Blue,
	}
	c.Layout(400, 300)
	return c
}

// SetSeries replaces the displayed series and recomputes the layout.
func (c *Chart) SetSeries(s *series.Series) {
	c.series = s
	c.Layout(c.size.Width, c.size.Height)
}

// Series returns the displayed series, or nil.
func (c *Chart) Series() *series.Series {
	return c.series
}

// ValueFormat returns the default value format.
func (c *Chart) ValueFormat() numfmt.Format {
	return c.format
}

// SetValueFormat sets the default value format.
func (c *Chart) SetValueFormat(f numfmt.Format) {
	c.format = f
}

// LineColor returns the series stroke color.
func (c *Chart) LineColor() color.RGBA {
	return c.lineColor
}

// SetLineColor sets the series stroke color.
func (c *Chart) SetLineColor(col color.RGBA) {
	c.lineColor = col
}

// Size returns the size used by the last layout.
func (c *Chart) Size() geometry.Size {
	return c.size
}

// PlotBox returns the data area inside the padding.
func (c *Chart) PlotBox() geometry.RectInt {
	return c.box
}

// XAxis maps pixels to epoch milliseconds.
func (c *Chart) XAxis() *LinearAxis {
	return &c.x
}

// YAxis maps pixels to values.
func (c *Chart) YAxis() *LinearAxis {
	return &c.y
}

// Layout computes the plot box and axes for a widget of w by h pixels.
func (c *Chart) Layout(w, h int) {
	c.size = geometry.Size{Width: w, Height: h}

	left := c.padding.Left
	top := c.padding.Top
	right := max(left+1, w-c.padding.Right)
	bottom := max(top+1, h-c.padding.Bottom)
	c.box = geometry.NewRectInt(left, top, right-left, bottom-top)

	xMin, xMax, yMin, yMax := c.dataRange()
	c.x = LinearAxis{Min: xMin, Max: xMax, PixelMin: float64(left), PixelMax: float64(right)}
	c.y = LinearAxis{Min: yMin, Max: yMax, PixelMin: float64(bottom), PixelMax: float64(top)}
}

func (c *Chart) dataRange() (xMin, xMax, yMin, yMax float64) {
	first, last, lo, hi, ok := time.Time{}, time.Time{}, 0.0, 0.0, false
	if c.series != nil {
		first, last, lo, hi, ok = c.series.Bounds()
	}
	if !ok {
		now := time.Now()
		first, last, lo, hi = now.Add(-24*time.Hour), now, 0, 1
	}
	if !last.After(first) {
		last = first.Add(24 * time.Hour)
	}
	yMin, yMax = niceBounds(lo, hi)
	return float64(first.UnixMilli()), float64(last.UnixMilli()), yMin, yMax
}

// Nearest returns the sample whose time is closest to pixel column px.
func (c *Chart) Nearest(px float64) (time.Time, float64, bool) {
	if c.series == nil || c.series.Len() == 0 {
		return time.Time{}, 0, false
	}
	target := c.x.PixelToData(px)
	ms := c.series.Millis()

	i := sort.SearchFloat64s(ms, target)
	switch {
	case i == len(ms):
		i--
	case i > 0 && math.Abs(ms[i-1]-target) <= math.Abs(ms[i]-target):
		i--
	}
	return c.series.Times[i], c.series.Values[i], true
}

// Render draws the series into an image of the current layout size.
// The go-chart canvas box is the plot box, so pixels agree with the axes.
func (c *Chart) Render() (image.Image, error) {
	w, h := c.size.Width, c.size.Height
	if c.series == nil || c.series.Len() == 0 {
		return blank(w, h), nil
	}

	xs := c.series.Millis()
	ys := c.series.Values
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	ch := gochart.Chart{
		Width:  w,
		Height: h,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    c.padding.Top,
				Left:   c.padding.Left,
				Right:  c.padding.Right,
				Bottom: c.padding.Bottom,
			},
			FillColor: drawing.ColorWhite,
		},
		XAxis: gochart.XAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: c.x.Min, Max: c.x.Max},
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: c.y.Min, Max: c.y.Max},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    c.series.Name,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.Color{R: c.lineColor.R, G: c.lineColor.G, B: c.lineColor.B, A: c.lineColor.A},
					StrokeWidth: 1.5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return blank(w, h), fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return blank(w, h), fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	return img
}
