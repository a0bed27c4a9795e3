package measure

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"chart-measure/internal/numfmt"
	"chart-measure/pkg/colorutil"
	"chart-measure/pkg/geometry"
)

// Host is the chart the tool is attached to.
type Host interface {
	XAxis() Axis
	YAxis() Axis
	// PlotArea is the client area of the plot in pixels.
	PlotArea() geometry.RectInt
	// ValueFormat is the chart's default value format.
	ValueFormat() numfmt.Format
	// SetTooltipActive shows or suppresses the chart tooltip.
	SetTooltipActive(active bool)
	// Redraw asks the host to repaint; the host coalesces requests.
	Redraw()
}

// Observer is notified every time the tool is toggled. Toolbar buttons
// register as observers to keep their icon in sync.
type Observer interface {
	SetActive(active bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(active bool)

// SetActive calls f(active).
func (f ObserverFunc) SetActive(active bool) { f(active) }

// Option configures a Tool.
type Option func(*Tool)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tool) { t.log = l }
}

// WithLocation sets the time zone used to derive calendar dates.
func WithLocation(loc *time.Location) Option {
	return func(t *Tool) { t.loc = loc }
}

// WithColor sets the initial overlay color.
func WithColor(c color.RGBA) Option {
	return func(t *Tool) { t.color = c }
}

// Tool is the measurement overlay attached to one chart. All methods must
// be called from the UI event loop.
type Tool struct {
	host      Host
	log       *zap.Logger
	loc       *time.Location
	observers []Observer

	active       bool
	showRelative bool
	color        color.RGBA
	capture      Capture
}

// NewTool creates an inactive tool for host.
func NewTool(host Host, opts ...Option) *Tool {
	t := &Tool{
		host:         host,
		log:          zap.NewNop(),
		showRelative: true,
		color:        colorutil.Black,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Color returns the overlay color.
func (t *Tool) Color() color.RGBA {
	return t.color
}

// SetColor sets the overlay color. It takes effect on the next paint.
func (t *Tool) SetColor(c color.RGBA) {
	t.color = c
}

// Active reports whether the tool is capturing.
func (t *Tool) Active() bool {
	return t.active
}

// ShowsRelativeChange reports whether the label includes the relative change.
func (t *Tool) ShowsRelativeChange() bool {
	return t.showRelative
}

// Subscribe registers o for toggle notifications and immediately tells it
// the current state.
func (t *Tool) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
	o.SetActive(t.active)
}

// Toggle switches the tool on or off.
func (t *Tool) Toggle() {
	t.active = !t.active

	if t.active {
		// Percent values get no relative change.
		t.showRelative = !numfmt.IsPercent(t.host.ValueFormat())
	}

	for _, o := range t.observers {
		o.SetActive(t.active)
	}

	t.host.SetTooltipActive(!t.active)

	if !t.active {
		t.capture.Reset()
		t.host.Redraw()
	}

	t.log.Debug("measurement tool toggled",
		zap.Bool("active", t.active),
		zap.Bool("relative", t.showRelative))
}

func (t *Tool) mapper() Mapper {
	return Mapper{X: t.host.XAxis(), Y: t.host.YAxis(), Location: t.loc}
}

// PointerDown handles a button press on the plot area.
func (t *Tool) PointerDown(ev PointerEvent) {
	if !t.active || ev.Button != ButtonPrimary {
		return
	}
	if t.capture.Down(t.mapper().Spot(ev)) {
		t.host.Redraw()
	}
}

// PointerMove handles pointer motion over the plot area.
func (t *Tool) PointerMove(ev PointerEvent) {
	if !t.active {
		return
	}
	if t.capture.Move(t.mapper().Spot(ev)) {
		t.host.Redraw()
	}
}

// PointerUp handles a button release on the plot area.
func (t *Tool) PointerUp(ev PointerEvent) {
	if !t.active || ev.Button != ButtonPrimary {
		return
	}
	if t.capture.Up(t.mapper().Spot(ev)) {
		if !t.capture.Following() {
			t.log.Debug("measurement completed")
		}
		t.host.Redraw()
	}
}

// Points returns the captured spots when both are set.
func (t *Tool) Points() (start, end Spot, ok bool) {
	start, ok = t.capture.Start()
	if !ok {
		return Spot{}, Spot{}, false
	}
	end, ok = t.capture.End()
	return start, end, ok
}

// Measurement returns the current measurement when both points are set.
func (t *Tool) Measurement() (Measurement, bool) {
	start, end, ok := t.Points()
	if !ok {
		return Measurement{}, false
	}
	return Measure(start, end), true
}

// Label returns the label text of the current measurement.
func (t *Tool) Label() (string, bool) {
	m, ok := t.Measurement()
	if !ok {
		return "", false
	}
	return m.Text(t.host.ValueFormat(), t.showRelative), true
}
