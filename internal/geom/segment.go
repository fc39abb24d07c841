package geom

// Segment is a straight stroke from Start to End drawn with Width.
type Segment struct {
	Start Point  `json:"start"`
	End   Point  `json:"end"`
	Width Length `json:"width"`
}

func Seg(x0, y0, x1, y1, width Length) Segment {
	return Segment{Start: Pt(x0, y0), End: Pt(x1, y1), Width: width}
}

// Bounds returns the rectangle spanned by the segment's centreline.
func (s Segment) Bounds() Rect {
	return RectFromPoints(s.Start, s.End)
}

func (s Segment) Translate(d Point) Segment {
	return Segment{Start: s.Start.Add(d), End: s.End.Add(d), Width: s.Width}
}

// IsAlong reports whether the segment runs parallel to axis.
func (s Segment) IsAlong(axis Axis) bool {
	other := axis.Other()
	return s.Start.Coord(other) == s.End.Coord(other) && s.Start.Coord(axis) != s.End.Coord(axis)
}

// Span returns the segment's extent along axis as an ordered range.
func (s Segment) Span(axis Axis) Range {
	a, b := s.Start.Coord(axis), s.End.Coord(axis)
	return Range{Low: minLength(a, b), High: maxLength(a, b)}
}

// Length returns the length of an axis-aligned segment. Diagonal segments
// report the longer of their two extents.
func (s Segment) Length() Length {
	return maxLength(s.Span(AxisX).Len(), s.Span(AxisY).Len())
}

// HitTest reports whether the segment's centreline touches rect grown by
// accuracy on every side. Zero-area probes are supported.
func (s Segment) HitTest(rect Rect, accuracy Length) bool {
	r := rect.Inflate(accuracy, accuracy)
	if r.Contains(s.Start) || r.Contains(s.End) {
		return true
	}
	return clipsRect(s.Start, s.End, r)
}

// clipsRect is a Liang-Barsky clip of the segment a-b against r.
func clipsRect(a, b Point, r Rect) bool {
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{
		x0 - float64(r.Left()),
		float64(r.Right()) - x0,
		y0 - float64(r.Top()),
		float64(r.Bottom()) - y0,
	}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0 <= t1
}
