// Package measure implements the chart measurement overlay: the user picks
// two points on a time-series chart and the overlay shows the elapsed days,
// the value delta and the relative change between them.
//
// The package knows nothing about a particular UI toolkit. Pointer events,
// axis mappings, redraw requests and drawing primitives are supplied by the
// host through the Host, Axis and Surface interfaces.
package measure

import (
	"time"

	"chart-measure/pkg/geometry"
)

// Axis converts between pixel and data coordinates along one dimension.
type Axis interface {
	PixelToData(px float64) float64
	DataToPixel(v float64) int
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonTertiary
)

// PointerEvent is a raw pointer event in plot-area pixels. Time is the
// event time in milliseconds; only differences between events matter.
type PointerEvent struct {
	X, Y   float64
	Button Button
	Time   int64
}

// Spot is a captured measurement point. X is the x data coordinate
// (epoch milliseconds) and Date its calendar day, stored as midnight UTC.
type Spot struct {
	Time  int64
	Date  time.Time
	X     float64
	Value float64
}

// Mapper converts pointer events to spots and spots back to pixels.
// Axes are queried on every call so spots follow zoom and resize.
type Mapper struct {
	X, Y     Axis
	Location *time.Location
}

// Spot builds a spot from a pointer event.
func (m Mapper) Spot(ev PointerEvent) Spot {
	x := m.X.PixelToData(ev.X)
	return Spot{
		Time:  ev.Time,
		Date:  CalendarDate(int64(x), m.location()),
		X:     x,
		Value: m.Y.PixelToData(ev.Y),
	}
}

// Point returns the pixel position of s under the current axis mapping.
func (m Mapper) Point(s Spot) geometry.PointInt {
	return geometry.Pt(m.X.DataToPixel(s.X), m.Y.DataToPixel(s.Value))
}

func (m Mapper) location() *time.Location {
	if m.Location == nil {
		return time.Local
	}
	return m.Location
}

// CalendarDate returns the calendar day of the epoch-millisecond instant ms
// in loc, as midnight UTC of that day.
func CalendarDate(ms int64, loc *time.Location) time.Time {
	y, mo, d := time.UnixMilli(ms).In(loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of calendar days from a to b,
// where both are dates produced by CalendarDate.
func DaysBetween(a, b time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}
