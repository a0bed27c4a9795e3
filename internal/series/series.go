// Package series provides the time-series model shown by the chart and
// loaders for series files.
package series

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Series is a named sequence of dated values ordered by time.
type Series struct {
	Name   string
	Times  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s *Series) Len() int {
	return len(s.Times)
}

// Append adds a point. Call Sort after appending out of order.
func (s *Series) Append(t time.Time, v float64) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}

// Sort orders the points by time, keeping values paired with their times.
func (s *Series) Sort() {
	sort.Sort(byTime{s})
}

// Millis returns the point times as epoch milliseconds.
func (s *Series) Millis() []float64 {
	out := make([]float64, len(s.Times))
	for i, t := range s.Times {
		out[i] = float64(t.UnixMilli())
	}
	return out
}

// Bounds returns the time span and value range. ok is false for an empty
// series.
func (s *Series) Bounds() (first, last time.Time, minV, maxV float64, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, 0, 0, false
	}
	return s.Times[0], s.Times[len(s.Times)-1], floats.Min(s.Values), floats.Max(s.Values), true
}

type byTime struct{ s *Series }

func (b byTime) Len() int           { return b.s.Len() }
func (b byTime) Less(i, j int) bool { return b.s.Times[i].Before(b.s.Times[j]) }
func (b byTime) Swap(i, j int) {
	b.s.Times[i], b.s.Times[j] = b.s.Times[j], b.s.Times[i]
	b.s.Values[i], b.s.Values[j] = b.s.Values[j], b.s.Values[i]
}
