package engine

import (
	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

// SpaceItemsEvenly returns count positions dividing low..high into count+1
// equal parts. The ends are never used.
func SpaceItemsEvenly(low, high geom.Length, count int) []geom.Length {
	if count <= 0 {
		return nil
	}
	span := high - low
	out := make([]geom.Length, count)
	for i := 0; i < count; i++ {
		out[i] = low + geom.Length(i+1)*span/geom.Length(count+1)
	}
	return out
}

// SpaceItemsAround returns the centres of count equal sub-spans of low..high.
func SpaceItemsAround(low, high geom.Length, count int) []geom.Length {
	if count <= 0 {
		return nil
	}
	span := high - low
	out := make([]geom.Length, count)
	for i := 0; i < count; i++ {
		out[i] = low + geom.Length(2*i+1)*span/geom.Length(2*count)
	}
	return out
}

// Tab is one breakaway tab along a board edge. Offset is measured from the
// board origin along Axis, which is also the axis the outline gap is cut in.
type Tab struct {
	Offset geom.Length
	Axis   geom.Axis
	Width  geom.Length
}

// EdgeProfile lists, per side of a board, the spans where its outline runs
// along the bounding box. Spans are relative to the box origin and sorted.
type EdgeProfile struct {
	Top, Bottom, Left, Right []geom.Range
}

// ProfileFromBoard collects the axis aligned Edge-Cuts segments of src that
// lie within accuracy of each side of box, the centreline bounding box of the
// outline, and merges their spans.
func ProfileFromBoard(src *board.Document, box geom.Rect, accuracy geom.Length) EdgeProfile {
	var p EdgeProfile
	near := func(a, b geom.Length) bool {
		d := a - b
		return d <= accuracy && d >= -accuracy
	}

	for _, s := range src.Segments() {
		switch {
		case s.IsAlong(geom.AxisX):
			r := shiftRange(s.Span(geom.AxisX), box.Left())
			y := s.Start.Y
			if near(y, box.Top()) {
				p.Top = append(p.Top, r)
			}
			if near(y, box.Bottom()) {
				p.Bottom = append(p.Bottom, r)
			}
		case s.IsAlong(geom.AxisY):
			r := shiftRange(s.Span(geom.AxisY), box.Top())
			x := s.Start.X
			if near(x, box.Left()) {
				p.Left = append(p.Left, r)
			}
			if near(x, box.Right()) {
				p.Right = append(p.Right, r)
			}
		}
	}

	p.Top = geom.MergeRanges(p.Top)
	p.Bottom = geom.MergeRanges(p.Bottom)
	p.Left = geom.MergeRanges(p.Left)
	p.Right = geom.MergeRanges(p.Right)
	return p
}

func shiftRange(r geom.Range, origin geom.Length) geom.Range {
	return geom.Range{Low: r.Low - origin, High: r.High - origin}
}

// TabPlacer turns a tab count into tab positions along one board edge.
type TabPlacer struct {
	Mode     model.TabMode
	TabWidth geom.Length
	// Profile is used by auto mode. Without one, auto mode treats every edge
	// as straight.
	Profile *EdgeProfile
}

// Place returns the tabs for an edge of the given length running along axis.
// Tabs along X sit on the top and bottom edges; tabs along Y on the left and
// right edges.
func (tp TabPlacer) Place(axis geom.Axis, length geom.Length, count int) []Tab {
	var offsets []geom.Length
	switch tp.Mode {
	case model.TabModeAround:
		offsets = SpaceItemsAround(0, length, count)
	case model.TabModeAuto:
		offsets = tp.placeAuto(axis, length, count)
	default:
		offsets = SpaceItemsEvenly(0, length, count)
	}

	tabs := make([]Tab, len(offsets))
	for i, off := range offsets {
		tabs[i] = Tab{Offset: off, Axis: axis, Width: tp.TabWidth}
	}
	return tabs
}

func (tp TabPlacer) placeAuto(axis geom.Axis, length geom.Length, count int) []geom.Length {
	var ranges []geom.Range
	if tp.Profile == nil {
		ranges = []geom.Range{{Low: 0, High: length}}
	} else if axis == geom.AxisX {
		ranges = FindOverlappingRanges(tp.Profile.Top, tp.Profile.Bottom)
	} else {
		ranges = FindOverlappingRanges(tp.Profile.Left, tp.Profile.Right)
	}
	ranges = FilterRanges(ranges, tp.TabWidth)

	counts := ScoreDistributeTabs(ranges, count, tp.TabWidth)
	var offsets []geom.Length
	for i, r := range ranges {
		if counts[i] == 0 {
			continue
		}
		offsets = append(offsets, SpaceItemsAround(r.Low, r.High, counts[i])...)
	}
	return offsets
}
