package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

func TestAddOutlineSquare(t *testing.T) {
	d := board.NewDocument()
	AddOutlineSquare(d, 10, 20, 100, 50, 3)

	assert.Equal(t, []geom.Segment{
		geom.Seg(10, 20, 110, 20, 3),
		geom.Seg(110, 20, 110, 70, 3),
		geom.Seg(10, 70, 110, 70, 3),
		geom.Seg(10, 20, 10, 70, 3),
	}, d.Segments())
}

func TestBreakOutline_SplitsAroundGap(t *testing.T) {
	d := board.NewDocument()
	id := AddOutline(d, 0, 0, 100, 0, 2)

	first, second, ok := BreakOutline(d, id, geom.NewRect(40, 0, 20, 0), geom.AxisX)
	require.True(t, ok)

	_, exists := d.Get(id)
	assert.False(t, exists, "original segment should be removed")

	a, _ := d.Get(first)
	b, _ := d.Get(second)
	assert.Equal(t, geom.Seg(0, 0, 40, 0, 2), a.(board.OutlineSegment).Segment)
	assert.Equal(t, geom.Seg(60, 0, 100, 0, 2), b.(board.OutlineSegment).Segment)

	// Both halves plus the gap cover the original span
	total := a.(board.OutlineSegment).Length() + b.(board.OutlineSegment).Length() + 20
	assert.Equal(t, geom.Length(100), total)
}

func TestBreakOutline_NormalisesReversedSegment(t *testing.T) {
	d := board.NewDocument()
	id := AddOutline(d, 0, 100, 0, 0, 1)

	first, second, ok := BreakOutline(d, id, geom.NewRect(0, 40, 0, 20), geom.AxisY)
	require.True(t, ok)

	a, _ := d.Get(first)
	b, _ := d.Get(second)
	assert.Equal(t, geom.Seg(0, 0, 0, 40, 1), a.(board.OutlineSegment).Segment)
	assert.Equal(t, geom.Seg(0, 60, 0, 100, 1), b.(board.OutlineSegment).Segment)
}

func TestBreakOutline_UnknownOrNonOutline(t *testing.T) {
	d := board.NewDocument()
	hole := AddHole(d, 5, 5, 2)

	_, _, ok := BreakOutline(d, 99, geom.NewRect(0, 0, 1, 0), geom.AxisX)
	assert.False(t, ok)

	_, _, ok = BreakOutline(d, hole, geom.NewRect(0, 0, 1, 0), geom.AxisX)
	assert.False(t, ok)
	assert.Equal(t, 1, d.Len(), "hole must not be removed")
}

func TestAddHoleAndFiducial(t *testing.T) {
	d := board.NewDocument()
	AddHole(d, 1, 2, 3)
	AddFiducial(d, 4, 5, 1, 2, board.SideBack)

	require.Len(t, d.Holes(), 1)
	assert.Equal(t, board.Hole{Pos: geom.Pt(1, 2), Diameter: 3}, d.Holes()[0])
	require.Len(t, d.Fiducials(), 1)
	assert.Equal(t, board.Fiducial{Pos: geom.Pt(4, 5), Copper: 1, Mask: 2, Side: board.SideBack}, d.Fiducials()[0])
}
