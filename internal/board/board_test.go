package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/pcbpanel/internal/geom"
)

func mm(v float64) geom.Length { return geom.FromMM(v) }

// squareBoard returns a document with a closed w x h outline at the origin.
func squareBoard(w, h, width geom.Length) *Document {
	d := NewDocument()
	d.Add(OutlineSegment{geom.Seg(0, 0, w, 0, width)})
	d.Add(OutlineSegment{geom.Seg(w, 0, w, h, width)})
	d.Add(OutlineSegment{geom.Seg(0, h, w, h, width)})
	d.Add(OutlineSegment{geom.Seg(0, 0, 0, h, width)})
	return d
}

func TestDocument_AddDeletePreservesOrder(t *testing.T) {
	d := NewDocument()
	a := d.Add(Hole{Pos: geom.Pt(1, 1), Diameter: 2})
	b := d.Add(Hole{Pos: geom.Pt(2, 2), Diameter: 2})
	c := d.Add(Hole{Pos: geom.Pt(3, 3), Diameter: 2})

	require.True(t, d.Delete(b))
	assert.False(t, d.Delete(b), "second delete should fail")

	entries := d.Items()
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0].ID)
	assert.Equal(t, c, entries[1].ID)

	_, ok := d.Get(b)
	assert.False(t, ok)
}

func TestDocument_OutlineBoundsAndThickness(t *testing.T) {
	d := squareBoard(mm(20), mm(15), mm(0.2))
	d.Add(Graphic{Layer: LayerFSilk, Points: []geom.Point{geom.Pt(mm(-5), mm(-5)), geom.Pt(0, 0)}})

	box, ok := d.OutlineBounds()
	require.True(t, ok)
	// Stroke width widens the box by half the width on each side; silkscreen is ignored
	assert.Equal(t, geom.NewRect(mm(-0.1), mm(-0.1), mm(20.2), mm(15.2)), box)
	assert.Equal(t, mm(0.2), d.OutlineThickness())
}

func TestDocument_OutlineBoundsFallsBackToAllItems(t *testing.T) {
	d := NewDocument()
	d.Add(Hole{Pos: geom.Pt(mm(5), mm(5)), Diameter: mm(2)})

	box, ok := d.OutlineBounds()
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(mm(4), mm(4), mm(2), mm(2)), box)
	assert.Equal(t, geom.Length(0), d.OutlineThickness())

	_, ok = NewDocument().OutlineBounds()
	assert.False(t, ok)
}

func TestDocument_HitTestOnlyOutline(t *testing.T) {
	d := squareBoard(mm(20), mm(15), mm(0.1))
	d.Add(Graphic{Layer: LayerFSilk, Points: []geom.Point{geom.Pt(mm(5), 0), geom.Pt(mm(15), 0)}})

	hits := d.HitTest(geom.NewRect(mm(9), 0, mm(2), 0), 10)
	require.Len(t, hits, 1)
	item, _ := d.Get(hits[0])
	seg := item.(OutlineSegment)
	assert.Equal(t, geom.Seg(0, 0, mm(20), 0, mm(0.1)), seg.Segment)
}

func TestDocument_Move(t *testing.T) {
	d := squareBoard(mm(10), mm(10), mm(0.1))
	d.Add(Fiducial{Pos: geom.Pt(mm(1), mm(1)), Copper: mm(1), Mask: mm(2)})
	d.Move(geom.Pt(mm(20), mm(20)))

	segs := d.Segments()
	require.Len(t, segs, 4)
	assert.Equal(t, geom.Pt(mm(20), mm(20)), segs[0].Start)
	assert.Equal(t, geom.Pt(mm(21), mm(21)), d.Fiducials()[0].Pos)
}

func TestDocument_AddNetsSortedUnique(t *testing.T) {
	d := NewDocument()
	d.AddNets("VCC", "GND", "")
	d.AddNets("GND", "SDA")
	assert.Equal(t, []string{"GND", "SDA", "VCC"}, d.Nets)
}

func TestCopier_AppendBoardTranslatesAndMerges(t *testing.T) {
	src := squareBoard(mm(10), mm(10), mm(0.1))
	src.CopperLayers = 4
	src.Nets = []string{"GND"}
	src.Add(Graphic{Layer: "F.Cu", Points: []geom.Point{geom.Pt(mm(1), mm(1)), geom.Pt(mm(2), mm(1))}, Net: "SIG"})

	dst := NewDocument()
	err := Copier{}.AppendBoard(dst, src, geom.Pt(mm(100), mm(50)))
	require.NoError(t, err)

	assert.Equal(t, src.Len(), dst.Len())
	assert.Equal(t, 4, dst.CopperLayers)
	assert.Equal(t, []string{"GND", "SIG"}, dst.Nets)
	assert.Equal(t, geom.Pt(mm(100), mm(50)), dst.Segments()[0].Start)

	// Source is left untouched
	assert.Equal(t, geom.Pt(0, 0), src.Segments()[0].Start)
}

func TestCopier_TrimSilkscreen(t *testing.T) {
	src := squareBoard(mm(10), mm(10), mm(0.1))
	inside := Graphic{Layer: LayerFSilk, Points: []geom.Point{geom.Pt(mm(1), mm(1)), geom.Pt(mm(9), mm(1))}}
	slightlyOut := Graphic{Layer: LayerFSilk, Points: []geom.Point{geom.Pt(mm(1), mm(-0.5)), geom.Pt(mm(9), mm(-0.5))}}
	farOut := Graphic{Layer: LayerBSilk, Points: []geom.Point{geom.Pt(mm(1), mm(-3)), geom.Pt(mm(9), mm(-3))}}
	copperOut := Graphic{Layer: "F.Cu", Points: []geom.Point{geom.Pt(mm(1), mm(-3)), geom.Pt(mm(9), mm(-3))}}
	src.Add(inside)
	src.Add(slightlyOut)
	src.Add(farOut)
	src.Add(copperOut)

	dst := NewDocument()
	require.NoError(t, Copier{TrimSilkscreen: true, Spacing: mm(2)}.AppendBoard(dst, src, geom.Point{}))

	var layers []string
	for _, e := range dst.Items() {
		if g, ok := e.Item.(Graphic); ok {
			layers = append(layers, g.Layer)
		}
	}
	// Far silkscreen is trimmed; the 0.5mm overhang is within half the spacing
	assert.Equal(t, []string{LayerFSilk, LayerFSilk, "F.Cu"}, layers)

	untrimmed := NewDocument()
	require.NoError(t, Copier{TrimSilkscreen: false, Spacing: mm(2)}.AppendBoard(untrimmed, src, geom.Point{}))
	assert.Equal(t, src.Len(), untrimmed.Len())
}
