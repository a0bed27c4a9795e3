package measure

import (
	"image/color"
	"math"
	"time"

	"chart-measure/internal/numfmt"
	"chart-measure/pkg/geometry"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const msPerHour = float64(time.Hour / time.Millisecond)

// hourAxis maps one pixel to one hour starting at epoch.
type hourAxis struct{}

func (hourAxis) PixelToData(px float64) float64 {
	return float64(epoch.UnixMilli()) + px*msPerHour
}

func (hourAxis) DataToPixel(v float64) int {
	return int(math.Round((v - float64(epoch.UnixMilli())) / msPerHour))
}

// valueAxis maps pixel y to value 200-y.
type valueAxis struct{}

func (valueAxis) PixelToData(px float64) float64 { return 200 - px }
func (valueAxis) DataToPixel(v float64) int     { return int(math.Round(200 - v)) }

type fakeHost struct {
	format        numfmt.Format
	plot          geometry.RectInt
	tooltipActive bool
	redraws       int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		format:        numfmt.SignedAmount,
		plot:          geometry.NewRectInt(0, 0, 400, 200),
		tooltipActive: true,
	}
}

func (h *fakeHost) XAxis() Axis                  { return hourAxis{} }
func (h *fakeHost) YAxis() Axis                  { return valueAxis{} }
func (h *fakeHost) PlotArea() geometry.RectInt   { return h.plot }
func (h *fakeHost) ValueFormat() numfmt.Format   { return h.format }
func (h *fakeHost) SetTooltipActive(active bool) { h.tooltipActive = active }
func (h *fakeHost) Redraw()                      { h.redraws++ }

// press builds a primary-button event at day/value coordinates.
func press(day int, value float64, ms int64) PointerEvent {
	return PointerEvent{X: float64(day * 24), Y: 200 - value, Button: ButtonPrimary, Time: ms}
}

type call struct {
	op   string
	args []int
	text string
}

// recordingSurface records drawing calls.
type recordingSurface struct {
	antialias bool
	fg, bg    color.Color
	width     float64
	calls     []call
	panicOn   string
}

func (s *recordingSurface) Antialias() bool             { return s.antialias }
func (s *recordingSurface) SetAntialias(on bool)        { s.antialias = on }
func (s *recordingSurface) SetForeground(c color.Color) { s.fg = c }
func (s *recordingSurface) SetBackground(c color.Color) { s.bg = c }
func (s *recordingSurface) SetLineWidth(w float64)      { s.width = w }

func (s *recordingSurface) record(op string, text string, args ...int) {
	if op == s.panicOn {
		panic("surface failure: " + op)
	}
	s.calls = append(s.calls, call{op: op, args: args, text: text})
}

func (s *recordingSurface) DrawLine(x1, y1, x2, y2 int) {
	s.record("line", "", x1, y1, x2, y2)
}

func (s *recordingSurface) FillOval(x, y, w, h int) {
	s.record("oval", "", x, y, w, h)
}

func (s *recordingSurface) FillRoundRect(x, y, w, h, arc int) {
	s.record("rrect", "", x, y, w, h, arc)
}

func (s *recordingSurface) TextExtent(text string) geometry.Size {
	return geometry.Size{Width: 7 * len(text), Height: 13}
}

func (s *recordingSurface) DrawText(text string, x, y int) {
	s.record("text", text, x, y)
}

func (s *recordingSurface) find(op string) []call {
	var out []call
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}
