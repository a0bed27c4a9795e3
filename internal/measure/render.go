package measure

import (
	"image/color"

	"chart-measure/pkg/colorutil"
	"chart-measure/pkg/geometry"
)

// Label layout in pixels.
const (
	LabelOffset  = 10
	LabelPadding = 5
	markerSize   = 5
)

// Surface is the 2D drawing surface the overlay paints on. Lines and text
// use the foreground color, fills use the background color.
type Surface interface {
	Antialias() bool
	SetAntialias(on bool)
	SetForeground(c color.Color)
	SetBackground(c color.Color)
	SetLineWidth(w float64)
	DrawLine(x1, y1, x2, y2 int)
	FillOval(x, y, w, h int)
	FillRoundRect(x, y, w, h, arc int)
	TextExtent(text string) geometry.Size
	// DrawText draws text with its top-left corner at (x, y).
	DrawText(text string, x, y int)
}

// LabelBox returns the label rectangle for a label of the given text extent
// anchored at the end point p. The label goes to the right of p when p lies
// in the left half of plot, otherwise to the left.
func LabelBox(p geometry.PointInt, text geometry.Size, plot geometry.RectInt) geometry.RectInt {
	w := text.Width + 2*LabelPadding
	h := text.Height + 2*LabelPadding
	y := p.Y - text.Height/2 - LabelPadding

	if p.X < plot.X+plot.Width/2 {
		return geometry.NewRectInt(p.X+LabelOffset, y, w, h)
	}
	return geometry.NewRectInt(p.X-LabelOffset-w, y, w, h)
}

// Paint draws the overlay. It does nothing until both points are set.
// The surface's antialias setting is restored on return.
func (t *Tool) Paint(s Surface) {
	start, end, ok := t.Points()
	if !ok {
		return
	}

	m := t.mapper()
	p1 := m.Point(start)
	p2 := m.Point(end)

	defer s.SetAntialias(s.Antialias())

	s.SetLineWidth(1)
	s.SetForeground(t.color)
	s.SetBackground(t.color)
	s.SetAntialias(true)
	s.DrawLine(p1.X, p1.Y, p2.X, p2.Y)

	r := markerSize / 2
	s.FillOval(p1.X-r, p1.Y-r, markerSize, markerSize)
	s.FillOval(p2.X-r, p2.Y-r, markerSize, markerSize)

	text := Measure(start, end).Text(t.host.ValueFormat(), t.showRelative)
	extent := s.TextExtent(text)
	box := LabelBox(p2, extent, t.host.PlotArea())

	bg := colorutil.Brighter(t.color)
	s.SetBackground(bg)
	s.SetForeground(colorutil.TextColor(bg))
	s.FillRoundRect(box.X, box.Y, box.Width, box.Height, LabelPadding)
	s.DrawText(text, box.X+LabelPadding, box.Y+LabelPadding)
}
