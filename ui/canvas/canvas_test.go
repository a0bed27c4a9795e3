package canvas

import (
	"image"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chart-measure/internal/chart"
	"chart-measure/internal/measure"
	"chart-measure/internal/numfmt"
	"chart-measure/internal/series"
	"chart-measure/pkg/colorutil"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type canvasFixture struct {
	cc      *ChartCanvas
	clock   time.Time
	redraws int
}

func newCanvasFixture(t *testing.T) *canvasFixture {
	t.Helper()
	test.NewTempApp(t)

	s := &series.Series{Name: "price"}
	for i := 0; i <= 10; i++ {
		s.Append(day0.AddDate(0, 0, i), 100+float64(i))
	}

	f := &canvasFixture{clock: day0}
	f.cc = NewChartCanvas(chart.New(numfmt.SignedAmount), zap.NewNop(), measure.WithLocation(time.UTC))
	f.cc.now = func() time.Time { return f.clock }
	f.cc.OnRedraw(func() { f.redraws++ })
	f.cc.Resize(fyne.NewSize(400, 300))
	f.cc.SetSeries(s)

	img := f.cc.draw(400, 300)
	require.Equal(t, 400, img.Bounds().Dx())
	return f
}

// at returns the widget position of noon on the given day at value v.
func (f *canvasFixture) at(day int, v float64) fyne.Position {
	ms := day0.AddDate(0, 0, day).Add(12 * time.Hour).UnixMilli()
	x := f.cc.Chart().XAxis().DataToPixel(float64(ms))
	y := f.cc.Chart().YAxis().DataToPixel(v)
	return fyne.NewPos(float32(x), float32(y))
}

func mouse(pos fyne.Position, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}, Button: b}
}

func (f *canvasFixture) click(pos fyne.Position) {
	f.cc.MouseDown(mouse(pos, desktop.MouseButtonPrimary))
	f.cc.MouseUp(mouse(pos, desktop.MouseButtonPrimary))
}

func TestChartCanvasClickClickMeasurement(t *testing.T) {
	f := newCanvasFixture(t)
	f.cc.Tool().Toggle()
	f.redraws = 0

	f.click(f.at(1, 100))
	f.clock = f.clock.Add(time.Second)
	f.cc.MouseMoved(mouse(f.at(6, 110), 0))
	f.click(f.at(6, 110))

	label, ok := f.cc.Tool().Label()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(label, "5 | +"), label)
	assert.Equal(t, 5, f.redraws)

	m, ok := f.cc.Tool().Measurement()
	require.True(t, ok)
	assert.InDelta(t, 10, m.Delta, 0.25)
}

func TestChartCanvasPaintsOverlay(t *testing.T) {
	f := newCanvasFixture(t)
	f.cc.Tool().Toggle()

	f.click(f.at(1, 100))
	f.clock = f.clock.Add(time.Second)
	end := f.at(6, 110)
	f.click(end)

	img, ok := f.cc.draw(400, 300).(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, colorutil.Black, img.RGBAAt(int(end.X), int(end.Y)))
}

func TestChartCanvasIgnoresEventsWhileInactive(t *testing.T) {
	f := newCanvasFixture(t)

	f.click(f.at(1, 100))
	_, _, ok := f.cc.Tool().Points()
	assert.False(t, ok)
	assert.Zero(t, f.redraws)
}

func TestChartCanvasIgnoresSecondaryButton(t *testing.T) {
	f := newCanvasFixture(t)
	f.cc.Tool().Toggle()

	f.cc.MouseDown(mouse(f.at(1, 100), desktop.MouseButtonSecondary))
	_, _, ok := f.cc.Tool().Points()
	assert.False(t, ok)
}

func TestChartCanvasTooltipFollowsTool(t *testing.T) {
	f := newCanvasFixture(t)
	assert.True(t, f.cc.TooltipActive())

	f.cc.Tool().Toggle()
	assert.False(t, f.cc.TooltipActive())

	f.cc.Tool().Toggle()
	assert.True(t, f.cc.TooltipActive())
}

func TestChartCanvasTooltipDraws(t *testing.T) {
	f := newCanvasFixture(t)
	f.cc.MouseMoved(mouse(f.at(3, 103), 0))
	assert.NotPanics(t, func() { f.cc.draw(400, 300) })

	f.cc.MouseOut()
	assert.False(t, f.cc.hovered)
}

func TestChartCanvasHostGeometry(t *testing.T) {
	f := newCanvasFixture(t)
	area := f.cc.PlotArea()
	assert.Equal(t, 400, area.Width)
	assert.Equal(t, 300, area.Height)
	assert.Same(t, numfmt.SignedAmount, f.cc.ValueFormat())
}

func TestToButton(t *testing.T) {
	assert.Equal(t, measure.ButtonPrimary, toButton(desktop.MouseButtonPrimary))
	assert.Equal(t, measure.ButtonSecondary, toButton(desktop.MouseButtonSecondary))
	assert.Equal(t, measure.ButtonTertiary, toButton(desktop.MouseButtonTertiary))
	assert.Equal(t, measure.ButtonNone, toButton(0))
}
