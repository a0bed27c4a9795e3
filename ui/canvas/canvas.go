// Package canvas provides the chart widget: it renders the series, delivers
// pointer events to the measurement tool and paints the overlay on top.
package canvas

import (
	"image"
	"image/draw"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"chart-measure/internal/chart"
	"chart-measure/internal/measure"
	"chart-measure/internal/numfmt"
	"chart-measure/internal/series"
	"chart-measure/pkg/colorutil"
	"chart-measure/pkg/geometry"
)

const (
	xTicks     = 4
	yTicks     = 5
	tickLength = 4
	dateLayout = "2006-01-02"
)

// ChartCanvas displays a chart and hosts the measurement tool.
type ChartCanvas struct {
	widget.BaseWidget

	chart *chart.Chart
	tool  *measure.Tool
	log   *zap.Logger

	raster     *fynecanvas.Raster
	background image.Image
	dirty      bool
	scale      float64

	// Tooltip state
	tooltip bool
	hovered bool
	hover   fyne.Position

	now       func() time.Time
	menuItems func() []*fyne.MenuItem
	onRedraw  func()
}

// NewChartCanvas creates a chart widget for c. The measurement tool is
// created with the canvas as its host; opts configure it.
func NewChartCanvas(c *chart.Chart, log *zap.Logger, opts ...measure.Option) *ChartCanvas {
	if log == nil {
		log = zap.NewNop()
	}
	cc := &ChartCanvas{
		chart:   c,
		log:     log,
		dirty:   true,
		scale:   1,
		tooltip: true,
		now:     time.Now,
	}
	cc.tool = measure.NewTool(cc, append([]measure.Option{measure.WithLogger(log)}, opts...)...)

	cc.raster = fynecanvas.NewRaster(cc.draw)
	cc.raster.ScaleMode = fynecanvas.ImageScalePixels
	cc.raster.SetMinSize(fyne.NewSize(200, 150))

	cc.ExtendBaseWidget(cc)
	return cc
}

// Tool returns the measurement tool bound to this canvas.
func (cc *ChartCanvas) Tool() *measure.Tool {
	return cc.tool
}

// Chart returns the underlying chart model.
func (cc *ChartCanvas) Chart() *chart.Chart {
	return cc.chart
}

// SetSeries replaces the displayed series.
func (cc *ChartCanvas) SetSeries(s *series.Series) {
	cc.chart.SetSeries(s)
	cc.dirty = true
	cc.raster.Refresh()
}

// SetValueFormat changes the chart's value format.
func (cc *ChartCanvas) SetValueFormat(f numfmt.Format) {
	cc.chart.SetValueFormat(f)
	cc.raster.Refresh()
}

// SetContextMenu sets the builder for the secondary-click menu. It runs
// each time the menu opens.
func (cc *ChartCanvas) SetContextMenu(items func() []*fyne.MenuItem) {
	cc.menuItems = items
}

// OnRedraw registers a callback invoked on every redraw request from the
// measurement tool.
func (cc *ChartCanvas) OnRedraw(callback func()) {
	cc.onRedraw = callback
}

// XAxis implements measure.Host.
func (cc *ChartCanvas) XAxis() measure.Axis { return cc.chart.XAxis() }

// YAxis implements measure.Host.
func (cc *ChartCanvas) YAxis() measure.Axis { return cc.chart.YAxis() }

// PlotArea implements measure.Host. It is the whole drawable area of the widget.
func (cc *ChartCanvas) PlotArea() geometry.RectInt {
	size := cc.chart.Size()
	return geometry.NewRectInt(0, 0, size.Width, size.Height)
}

// ValueFormat implements measure.Host.
func (cc *ChartCanvas) ValueFormat() numfmt.Format { return cc.chart.ValueFormat() }

// SetTooltipActive implements measure.Host.
func (cc *ChartCanvas) SetTooltipActive(active bool) {
	cc.tooltip = active
	cc.raster.Refresh()
}

// TooltipActive reports whether the crosshair tooltip is shown.
func (cc *ChartCanvas) TooltipActive() bool {
	return cc.tooltip
}

// Redraw implements measure.Host.
func (cc *ChartCanvas) Redraw() {
	cc.raster.Refresh()
	if cc.onRedraw != nil {
		cc.onRedraw()
	}
}

func toButton(b desktop.MouseButton) measure.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return measure.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return measure.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return measure.ButtonTertiary
	}
	return measure.ButtonNone
}

// pointerEvent converts a widget position to raster pixels.
func (cc *ChartCanvas) pointerEvent(pos fyne.Position, button measure.Button) measure.PointerEvent {
	return measure.PointerEvent{
		X:      float64(pos.X) * cc.scale,
		Y:      float64(pos.Y) * cc.scale,
		Button: button,
		Time:   cc.now().UnixMilli(),
	}
}

// MouseDown implements desktop.Mouseable.
func (cc *ChartCanvas) MouseDown(ev *desktop.MouseEvent) {
	cc.tool.PointerDown(cc.pointerEvent(ev.Position, toButton(ev.Button)))
}

// MouseUp implements desktop.Mouseable.
func (cc *ChartCanvas) MouseUp(ev *desktop.MouseEvent) {
	cc.tool.PointerUp(cc.pointerEvent(ev.Position, toButton(ev.Button)))
}

// MouseIn implements desktop.Hoverable.
func (cc *ChartCanvas) MouseIn(ev *desktop.MouseEvent) {
	cc.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (cc *ChartCanvas) MouseMoved(ev *desktop.MouseEvent) {
	cc.hovered = true
	cc.hover = ev.Position
	if cc.tooltip {
		cc.raster.Refresh()
	}
	cc.tool.PointerMove(cc.pointerEvent(ev.Position, measure.ButtonNone))
}

// MouseOut implements desktop.Hoverable.
func (cc *ChartCanvas) MouseOut() {
	cc.hovered = false
	if cc.tooltip {
		cc.raster.Refresh()
	}
}

// TappedSecondary shows the context menu.
func (cc *ChartCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if cc.menuItems == nil {
		return
	}
	items := cc.menuItems()
	if len(items) == 0 {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(cc)
	if c == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), c, ev.AbsolutePosition)
}

// layout lays the chart out for a w x h raster and re-renders the
// background when the size or the data changed.
func (cc *ChartCanvas) layout(w, h int) {
	size := cc.chart.Size()
	if !cc.dirty && cc.background != nil && size.Width == w && size.Height == h {
		return
	}
	cc.chart.Layout(w, h)
	img, err := cc.chart.Render()
	if err != nil {
		cc.log.Warn("chart render failed", zap.Error(err))
	}
	cc.background = img
	cc.dirty = false
}

// draw is the raster drawing function.
func (cc *ChartCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if size := cc.Size(); size.Width > 0 {
		cc.scale = float64(w) / float64(size.Width)
	}
	cc.layout(w, h)

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), cc.background, image.Point{}, draw.Src)

	s := NewSurface(output)
	cc.drawAxes(s)
	if cc.tooltip && cc.hovered {
		cc.drawTooltip(s)
	}
	cc.tool.Paint(s)
	return output
}

// drawAxes draws the plot frame and the tick labels.
func (cc *ChartCanvas) drawAxes(s *Surface) {
	box := cc.chart.PlotBox()
	xa, ya := cc.chart.XAxis(), cc.chart.YAxis()

	s.SetAntialias(false)
	s.SetLineWidth(1)
	s.SetForeground(colorutil.Gray)
	s.DrawLine(box.X, box.Y, box.X, box.Bottom())
	s.DrawLine(box.X, box.Bottom(), box.Right(), box.Bottom())

	for i := 0; i < yTicks; i++ {
		v := ya.Min + float64(i)*(ya.Max-ya.Min)/float64(yTicks-1)
		py := ya.DataToPixel(v)
		text := numfmt.Amount.Format(v)
		ext := s.TextExtent(text)

		s.SetForeground(colorutil.Gray)
		s.DrawLine(box.X-tickLength, py, box.X, py)
		s.SetForeground(colorutil.Black)
		s.DrawText(text, box.X-tickLength-2-ext.Width, py-ext.Height/2)
	}

	for i := 0; i < xTicks; i++ {
		ms := xa.Min + float64(i)*(xa.Max-xa.Min)/float64(xTicks-1)
		px := xa.DataToPixel(ms)
		text := time.UnixMilli(int64(ms)).Format(dateLayout)
		ext := s.TextExtent(text)

		x := max(0, min(px-ext.Width/2, cc.chart.Size().Width-ext.Width))

		s.SetForeground(colorutil.Gray)
		s.DrawLine(px, box.Bottom(), px, box.Bottom()+tickLength)
		s.SetForeground(colorutil.Black)
		s.DrawText(text, x, box.Bottom()+tickLength+2)
	}
}

// drawTooltip draws a crosshair at the sample nearest to the pointer with
// its date and value.
func (cc *ChartCanvas) drawTooltip(s *Surface) {
	box := cc.chart.PlotBox()
	px := float64(cc.hover.X) * cc.scale
	py := float64(cc.hover.Y) * cc.scale
	if !box.Contains(geometry.Pt(int(px), int(py))) {
		return
	}
	t, v, ok := cc.chart.Nearest(px)
	if !ok {
		return
	}

	p := geometry.Pt(
		cc.chart.XAxis().DataToPixel(float64(t.UnixMilli())),
		cc.chart.YAxis().DataToPixel(v),
	)

	s.SetAntialias(false)
	s.SetLineWidth(1)
	s.SetForeground(colorutil.Gray)
	s.DrawLine(p.X, box.Y, p.X, box.Bottom())

	s.SetAntialias(true)
	s.SetBackground(cc.chart.LineColor())
	s.FillOval(p.X-3, p.Y-3, 6, 6)

	text := t.Format(dateLayout) + "  " + cc.chart.ValueFormat().Format(v)
	label := measure.LabelBox(p, s.TextExtent(text), cc.PlotArea())
	s.SetBackground(colorutil.White)
	s.FillRoundRect(label.X, label.Y, label.Width, label.Height, measure.LabelPadding)
	s.SetForeground(colorutil.Black)
	s.DrawText(text, label.X+measure.LabelPadding, label.Y+measure.LabelPadding)
	s.SetAntialias(false)
}

// CreateRenderer implements fyne.Widget.
func (cc *ChartCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &chartCanvasRenderer{canvas: cc}
}

type chartCanvasRenderer struct {
	canvas *ChartCanvas
}

func (r *chartCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *chartCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *chartCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *chartCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *chartCanvasRenderer) Destroy() {}
