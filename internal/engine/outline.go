package engine

import (
	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

// AddOutline appends one Edge-Cuts segment from (x0, y0) to (x1, y1).
func AddOutline(doc *board.Document, x0, y0, x1, y1, width geom.Length) board.ID {
	return doc.Add(board.OutlineSegment{Segment: geom.Seg(x0, y0, x1, y1, width)})
}

// AddOutlineSquare appends the four segments of a closed rectangle.
func AddOutlineSquare(doc *board.Document, x, y, w, h, width geom.Length) {
	AddOutline(doc, x, y, x+w, y, width)
	AddOutline(doc, x+w, y, x+w, y+h, width)
	AddOutline(doc, x, y+h, x+w, y+h, width)
	AddOutline(doc, x, y, x, y+h, width)
}

// BreakOutline replaces the segment id with two segments that leave gap open.
// The segment's endpoints are ordered along axis first, so the replacements
// always run from the low end to the gap's top-left corner and from the gap's
// bottom-right corner to the high end. The caller must make sure the segment
// actually spans the gap.
func BreakOutline(doc *board.Document, id board.ID, gap geom.Rect, axis geom.Axis) (board.ID, board.ID, bool) {
	item, ok := doc.Get(id)
	if !ok {
		return 0, 0, false
	}
	seg, ok := item.(board.OutlineSegment)
	if !ok {
		return 0, 0, false
	}

	start, end := seg.Start, seg.End
	if start.Coord(axis) >= end.Coord(axis) {
		start, end = end, start
	}

	doc.Delete(id)
	first := AddOutline(doc, start.X, start.Y, gap.Left(), gap.Top(), seg.Width)
	second := AddOutline(doc, gap.Right(), gap.Bottom(), end.X, end.Y, seg.Width)
	return first, second, true
}

// AddHole places a non-plated through hole of the given diameter.
func AddHole(doc *board.Document, x, y, size geom.Length) board.ID {
	return doc.Add(board.Hole{Pos: geom.Pt(x, y), Diameter: size})
}

// AddFiducial places a fiducial target on one copper side.
func AddFiducial(doc *board.Document, x, y, copper, mask geom.Length, side board.Side) board.ID {
	return doc.Add(board.Fiducial{Pos: geom.Pt(x, y), Copper: copper, Mask: mask, Side: side})
}
