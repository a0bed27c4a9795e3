package measure

import "time"

// DragThreshold separates the two ways of placing the far point. A press
// held longer than this before release is a drag: the measurement is done
// and the next press starts a new one. A shorter press is a click: the far
// point keeps following the pointer until the next press places it.
const DragThreshold = 300 * time.Millisecond

// follow is the capture's interaction mode.
type follow int

const (
	// followNone: the far point is fixed; the next press starts a new pair.
	followNone follow = iota
	// followPointer: the far point tracks the pointer; the next press
	// relocates it and keeps the start.
	followPointer
)

// Capture is the point-capture state machine. Each transition reports
// whether the overlay must be redrawn.
type Capture struct {
	start, end *Spot
	mode       follow
}

// Start returns the first point, if any.
func (c *Capture) Start() (Spot, bool) {
	if c.start == nil {
		return Spot{}, false
	}
	return *c.start, true
}

// End returns the second point, if any.
func (c *Capture) End() (Spot, bool) {
	if c.end == nil {
		return Spot{}, false
	}
	return *c.end, true
}

// Following reports whether the far point tracks the pointer.
func (c *Capture) Following() bool {
	return c.mode == followPointer
}

// Down handles a primary-button press.
func (c *Capture) Down(s Spot) bool {
	if c.mode == followPointer {
		c.end = &s
	} else {
		start, end := s, s
		c.start, c.end = &start, &end
	}
	c.mode = followPointer
	return true
}

// Move handles pointer motion.
func (c *Capture) Move(s Spot) bool {
	if c.mode != followPointer {
		return false
	}
	c.end = &s
	return true
}

// Up handles a primary-button release.
func (c *Capture) Up(s Spot) bool {
	if c.start == nil {
		return false
	}
	if time.Duration(s.Time-c.start.Time)*time.Millisecond > DragThreshold {
		c.mode = followNone
	}
	c.end = &s
	return true
}

// Reset returns the capture to its idle state.
func (c *Capture) Reset() {
	c.start, c.end = nil, nil
	c.mode = followNone
}
