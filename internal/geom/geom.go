// Package geom provides the integer geometry primitives used by the panel
// engine. All distances are stored in nanometres so that segments produced
// by different operations line up exactly for hit-testing.
package geom

import (
	"encoding/json"
	"math"
)

// Length is a distance in nanometres.
type Length int64

// Millimeter is one millimetre expressed as a Length.
const Millimeter Length = 1_000_000

// FromMM converts millimetres to a Length, rounding to the nearest unit.
func FromMM(mm float64) Length {
	return Length(math.Round(mm * float64(Millimeter)))
}

// MM returns the length in millimetres.
func (l Length) MM() float64 {
	return float64(l) / float64(Millimeter)
}

// MarshalJSON encodes the length as millimetres.
func (l Length) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.MM())
}

// UnmarshalJSON decodes a length given in millimetres.
func (l *Length) UnmarshalJSON(data []byte) error {
	var mm float64
	if err := json.Unmarshal(data, &mm); err != nil {
		return err
	}
	*l = FromMM(mm)
	return nil
}

func minLength(a, b Length) Length {
	if a < b {
		return a
	}
	return b
}

func maxLength(a, b Length) Length {
	if a > b {
		return a
	}
	return b
}

// Axis selects one of the two coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Point is a position in board coordinates (Y grows downwards).
type Point struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

func Pt(x, y Length) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Coord returns the coordinate of p along axis.
func (p Point) Coord(axis Axis) Length {
	if axis == AxisY {
		return p.Y
	}
	return p.X
}

// Rect is an axis-aligned rectangle. W and H may be zero, which is how
// hit-test probes along a single line are expressed.
type Rect struct {
	X Length `json:"x"`
	Y Length `json:"y"`
	W Length `json:"w"`
	H Length `json:"h"`
}

func NewRect(x, y, w, h Length) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFromPoints returns the smallest rectangle containing a and b.
func RectFromPoints(a, b Point) Rect {
	x0, x1 := minLength(a.X, b.X), maxLength(a.X, b.X)
	y0, y1 := minLength(a.Y, b.Y), maxLength(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Left() Length   { return r.X }
func (r Rect) Right() Length  { return r.X + r.W }
func (r Rect) Top() Length    { return r.Y }
func (r Rect) Bottom() Length { return r.Y + r.H }

func (r Rect) Origin() Point      { return Point{X: r.X, Y: r.Y} }
func (r Rect) TopLeft() Point     { return Point{X: r.Left(), Y: r.Top()} }
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Low and High return the rectangle's extent along axis.
func (r Rect) Low(axis Axis) Length {
	if axis == AxisY {
		return r.Top()
	}
	return r.Left()
}

func (r Rect) High(axis Axis) Length {
	if axis == AxisY {
		return r.Bottom()
	}
	return r.Right()
}

// Inflate grows the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy Length) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside or on the border of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.TopLeft()) && r.Contains(o.BottomRight())
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	x0 := minLength(r.Left(), o.Left())
	y0 := minLength(r.Top(), o.Top())
	x1 := maxLength(r.Right(), o.Right())
	y1 := maxLength(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
