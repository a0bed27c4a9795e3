package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"chart-measure/internal/measure"
	"chart-measure/pkg/colorutil"
	"chart-measure/pkg/geometry"
)

var _ measure.Surface = (*Surface)(nil)

// Surface draws onto an RGBA image. With antialiasing on, shapes go through
// gg; with it off they are rasterized pixel by pixel.
type Surface struct {
	img  *image.RGBA
	dc   *gg.Context
	face font.Face

	antialias bool
	fg, bg    color.Color
	lineWidth float64
}

// NewSurface returns a surface drawing into img with the 7x13 bitmap font.
func NewSurface(img *image.RGBA) *Surface {
	dc := gg.NewContextForRGBA(img)
	face := basicfont.Face7x13
	dc.SetFontFace(face)
	return &Surface{
		img:       img,
		dc:        dc,
		face:      face,
		fg:        colorutil.Black,
		bg:        colorutil.White,
		lineWidth: 1,
	}
}

// Image returns the target image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Antialias() bool { return s.antialias }

func (s *Surface) SetAntialias(on bool) { s.antialias = on }

func (s *Surface) SetForeground(c color.Color) { s.fg = c }

func (s *Surface) SetBackground(c color.Color) { s.bg = c }

func (s *Surface) SetLineWidth(w float64) {
	if w <= 0 {
		w = 1
	}
	s.lineWidth = w
}

// DrawLine strokes a line in the foreground color.
func (s *Surface) DrawLine(x1, y1, x2, y2 int) {
	if !s.antialias {
		s.bresenham(x1, y1, x2, y2, int(math.Round(s.lineWidth)))
		return
	}
	// Half-pixel offset centers a 1px stroke on the pixel grid.
	s.dc.SetColor(s.fg)
	s.dc.SetLineWidth(s.lineWidth)
	s.dc.DrawLine(float64(x1)+0.5, float64(y1)+0.5, float64(x2)+0.5, float64(y2)+0.5)
	s.dc.Stroke()
}

// FillOval fills the ellipse inscribed in the given rectangle with the
// background color.
func (s *Surface) FillOval(x, y, w, h int) {
	rx, ry := float64(w)/2, float64(h)/2
	cx, cy := float64(x)+rx, float64(y)+ry
	if !s.antialias {
		s.fillEllipse(cx, cy, rx, ry)
		return
	}
	s.dc.SetColor(s.bg)
	s.dc.DrawEllipse(cx, cy, rx, ry)
	s.dc.Fill()
}

// FillRoundRect fills a rectangle whose corners are rounded with arc as
// the corner diameter.
func (s *Surface) FillRoundRect(x, y, w, h, arc int) {
	r := float64(arc) / 2
	if !s.antialias {
		s.fillRoundRect(x, y, w, h, r)
		return
	}
	s.dc.SetColor(s.bg)
	s.dc.DrawRoundedRectangle(float64(x), float64(y), float64(w), float64(h), r)
	s.dc.Fill()
}

// TextExtent returns the advance width and line height of text.
func (s *Surface) TextExtent(text string) geometry.Size {
	w, h := s.dc.MeasureString(text)
	return geometry.Size{Width: int(math.Ceil(w)), Height: int(math.Ceil(h))}
}

// DrawText draws text in the foreground color with its top-left corner at (x, y).
func (s *Surface) DrawText(text string, x, y int) {
	ascent := s.face.Metrics().Ascent.Ceil()
	s.dc.SetColor(s.fg)
	s.dc.DrawString(text, float64(x), float64(y+ascent))
}

func (s *Surface) set(x, y int, c color.Color) {
	if image.Pt(x, y).In(s.img.Bounds()) {
		s.img.Set(x, y, c)
	}
}

// bresenham draws a thick line using Bresenham's algorithm.
func (s *Surface) bresenham(x1, y1, x2, y2, thickness int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	half := thickness / 2

	for {
		for t := -half; t <= thickness-1-half; t++ {
			for u := -half; u <= thickness-1-half; u++ {
				s.set(x1+u, y1+t, s.fg)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillEllipse sets every pixel whose center lies inside the ellipse.
func (s *Surface) fillEllipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minX := int(math.Floor(cx - rx))
	maxX := int(math.Ceil(cx + rx))
	minY := int(math.Floor(cy - ry))
	maxY := int(math.Ceil(cy + ry))

	for y := minY; y < maxY; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := minX; x < maxX; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				s.set(x, y, s.bg)
			}
		}
	}
}

func (s *Surface) fillRoundRect(x, y, w, h int, r float64) {
	r = math.Min(r, math.Min(float64(w), float64(h))/2)
	left, top := float64(x)+r, float64(y)+r
	right, bottom := float64(x+w)-r, float64(y+h)-r

	for py := y; py < y+h; py++ {
		fy := float64(py) + 0.5
		for px := x; px < x+w; px++ {
			fx := float64(px) + 0.5
			// Only the four corner squares need the distance test.
			cx := math.Max(left, math.Min(fx, right))
			cy := math.Max(top, math.Min(fy, bottom))
			if dx, dy := fx-cx, fy-cy; dx*dx+dy*dy <= r*r {
				s.set(px, py, s.bg)
			}
		}
	}
}
