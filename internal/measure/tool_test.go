package measure

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chart-measure/internal/numfmt"
	"chart-measure/pkg/colorutil"
)

func newTestTool(h *fakeHost) *Tool {
	return NewTool(h, WithLocation(time.UTC), WithLogger(zap.NewNop()))
}

func TestToolIgnoresEventsWhileInactive(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)

	tool.PointerDown(press(0, 100, 0))
	tool.PointerMove(press(1, 100, 10))
	tool.PointerUp(press(1, 100, 20))

	_, _, ok := tool.Points()
	assert.False(t, ok)
	assert.Zero(t, h.redraws)
}

func TestToolIgnoresNonPrimaryButtons(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)
	tool.Toggle()

	ev := press(0, 100, 0)
	ev.Button = ButtonSecondary
	tool.PointerDown(ev)
	tool.PointerMove(press(1, 100, 10))

	_, _, ok := tool.Points()
	assert.False(t, ok)
	assert.Zero(t, h.redraws)

	tool.PointerDown(press(0, 100, 0))
	ev = press(2, 100, 1000)
	ev.Button = ButtonTertiary
	tool.PointerUp(ev)
	assert.True(t, tool.capture.Following(), "release of another button does not end the drag")
}

func TestToolClickClickScenario(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)
	tool.Toggle()

	tool.PointerDown(press(0, 100, 0))
	tool.PointerUp(press(0, 100, 120))
	tool.PointerMove(press(3, 105, 400))
	tool.PointerDown(press(5, 110, 900))

	label, ok := tool.Label()
	require.True(t, ok)
	assert.Equal(t, "5 | +10.00 | +10.00%", label)
	assert.Equal(t, 4, h.redraws)

	m, ok := tool.Measurement()
	require.True(t, ok)
	assert.Equal(t, 5, m.Days)
	assert.InDelta(t, 10.0, m.Delta, 1e-9)
	assert.InDelta(t, 0.1, m.Relative, 1e-9)
}

func TestToolDragThenNewMeasurement(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)
	tool.Toggle()

	tool.PointerDown(press(2, 100, 0))
	tool.PointerMove(press(4, 90, 200))
	tool.PointerUp(press(4, 90, 500))

	label, ok := tool.Label()
	require.True(t, ok)
	assert.Equal(t, "2 | -10.00 | -10.00%", label)

	tool.PointerMove(press(8, 50, 600))
	label, _ = tool.Label()
	assert.Equal(t, "2 | -10.00 | -10.00%", label, "motion after a drag does not move the end")

	tool.PointerDown(press(9, 70, 1000))
	start, end, ok := tool.Points()
	require.True(t, ok)
	assert.Equal(t, start, end)
	assert.Equal(t, 70.0, start.Value)
}

func TestToolNegativeDays(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)
	tool.Toggle()

	tool.PointerDown(press(7, 100, 0))
	tool.PointerUp(press(2, 50, 1000))

	label, ok := tool.Label()
	require.True(t, ok)
	assert.Equal(t, "-5 | -50.00 | -50.00%", label)
}

func TestToolZeroStartValue(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)
	tool.Toggle()

	tool.PointerDown(press(0, 0, 0))
	tool.PointerUp(press(1, 10, 1000))

	m, ok := tool.Measurement()
	require.True(t, ok)
	assert.True(t, math.IsInf(m.Relative, 1))

	var label string
	assert.NotPanics(t, func() { label, _ = tool.Label() })
	assert.Equal(t, "1 | +10.00 | +∞%", label)

	// a fresh measurement from zero to zero: 0/0 - 1
	tool.PointerDown(press(3, 0, 2000))
	tool.PointerUp(press(3, 0, 2100))
	label, _ = tool.Label()
	assert.Equal(t, "0 | +0.00 | NaN", label)
}

func TestToolToggle(t *testing.T) {
	h := newFakeHost()
	tool := newTestTool(h)

	var states []bool
	tool.Subscribe(ObserverFunc(func(active bool) { states = append(states, active) }))
	var other []bool
	tool.Subscribe(ObserverFunc(func(active bool) { other = append(other, active) }))

	tool.Toggle()
	assert.True(t, tool.Active())
	assert.False(t, h.tooltipActive)
	assert.True(t, tool.ShowsRelativeChange())

	tool.PointerDown(press(0, 100, 0))
	redraws := h.redraws

	tool.Toggle()
	assert.False(t, tool.Active())
	assert.True(t, h.tooltipActive)
	assert.Equal(t, redraws+1, h.redraws)

	_, _, ok := tool.Points()
	assert.False(t, ok, "deactivation clears both points")
	assert.False(t, tool.capture.Following())

	assert.Equal(t, []bool{false, true, false}, states)
	assert.Equal(t, states, other)
}

func TestToolHidesRelativeChangeForPercentCharts(t *testing.T) {
	h := newFakeHost()
	h.format = numfmt.PercentWithSign
	tool := newTestTool(h)
	tool.Toggle()

	assert.False(t, tool.ShowsRelativeChange())

	tool.PointerDown(press(0, 100, 0))
	tool.PointerUp(press(5, 110, 1000))
	label, _ := tool.Label()
	assert.Equal(t, "5 | +1,000.00%", label)

	// the flag is re-evaluated on every activation
	tool.Toggle()
	h.format = numfmt.Amount
	tool.Toggle()
	assert.True(t, tool.ShowsRelativeChange())
}

func TestToolColor(t *testing.T) {
	tool := NewTool(newFakeHost())
	assert.Equal(t, colorutil.Black, tool.Color())

	tool.SetColor(colorutil.Blue)
	assert.Equal(t, colorutil.Blue, tool.Color())

	tool = NewTool(newFakeHost(), WithColor(colorutil.Magenta))
	assert.Equal(t, colorutil.Magenta, tool.Color())
}
