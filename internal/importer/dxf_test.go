package importer

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"

	"github.com/piwi3910/pcbpanel/internal/geom"
)

// saveDrawing writes a DXF with the given lines and circles.
func saveDrawing(t *testing.T, lines [][4]float64, circles [][3]float64) string {
	t.Helper()
	d := dxf.NewDrawing()
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	}
	for _, c := range circles {
		if _, err := d.Circle(c[0], c[1], 0, c[2]); err != nil {
			t.Fatalf("failed to add circle: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "board.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestImportDXF_Rectangle(t *testing.T) {
	path := saveDrawing(t, [][4]float64{
		{10, 10, 30, 10},
		{30, 10, 30, 25},
		{30, 25, 10, 25},
		{10, 25, 10, 10},
	}, [][3]float64{{15, 20, 1}})

	result := ImportDXF(path, geom.FromMM(0.1))
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	doc := result.Board
	segs := doc.Segments()
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	for _, s := range segs {
		if s.Width != geom.FromMM(0.1) {
			t.Errorf("expected edge width 0.1mm, got %v", s.Width.MM())
		}
	}

	box, ok := doc.OutlineBounds()
	if !ok {
		t.Fatal("expected outline bounds")
	}
	inner := box.Inflate(-geom.FromMM(0.05), -geom.FromMM(0.05))
	if inner != geom.NewRect(0, 0, geom.FromMM(20), geom.FromMM(15)) {
		t.Errorf("expected normalised 20x15mm outline, got %+v", inner)
	}

	// Y is flipped: the hole 5mm below the top edge in DXF is 5mm from the top on the board
	holes := doc.Holes()
	if len(holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(holes))
	}
	want := geom.Pt(geom.FromMM(5), geom.FromMM(5))
	if holes[0].Pos != want || holes[0].Diameter != geom.FromMM(2) {
		t.Errorf("unexpected hole %+v", holes[0])
	}
}

func TestImportDXF_OpenOutlineWarns(t *testing.T) {
	path := saveDrawing(t, [][4]float64{
		{0, 0, 20, 0},
		{20, 0, 20, 15},
	}, nil)

	result := ImportDXF(path, geom.FromMM(0.1))
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the open outline")
	}
}

func TestImportDXF_NoOutline(t *testing.T) {
	path := saveDrawing(t, nil, [][3]float64{{5, 5, 1}})

	result := ImportDXF(path, geom.FromMM(0.1))
	if len(result.Errors) == 0 {
		t.Error("expected error for a drawing without outline")
	}
	if result.Board != nil {
		t.Error("expected no board on error")
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/board.dxf", geom.FromMM(0.1))
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	// Bulge 1 is a half circle; counter-clockwise from (0,0) to (2,0) passes below
	pts := bulgeArcPoints(fpt{0, 0}, fpt{2, 0}, 1, 4)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	if pts[0] != (fpt{0, 0}) || pts[4] != (fpt{2, 0}) {
		t.Errorf("arc ends not pinned: %v", pts)
	}
	mid := pts[2]
	if mid.x < 0.999 || mid.x > 1.001 || mid.y > -0.999 || mid.y < -1.001 {
		t.Errorf("expected midpoint near (1,-1), got %v", mid)
	}
}

func TestOpenEnds(t *testing.T) {
	closed := []geom.Segment{
		geom.Seg(0, 0, 10, 0, 1),
		geom.Seg(10, 0, 10, 10, 1),
		geom.Seg(10, 10, 0, 0, 1),
	}
	if n := openEnds(closed); n != 0 {
		t.Errorf("expected closed triangle, got %d open ends", n)
	}
	if n := openEnds(closed[:2]); n != 2 {
		t.Errorf("expected 2 open ends, got %d", n)
	}
}
