package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

// arcSegments is the number of chords used for arcs and bulges.
const arcSegments = 32

// ImportResult holds the source board loaded from a DXF file.
type ImportResult struct {
	Board    *board.Document
	Errors   []string
	Warnings []string
}

// fpt is a DXF point in millimetres, Y up.
type fpt struct {
	x, y float64
}

// ImportDXF loads a board outline from an Edge-Cuts DXF plot. LINE,
// LWPOLYLINE and ARC entities become outline segments drawn with edgeWidth,
// since DXF carries no stroke width. CIRCLE entities become holes.
// The drawing is flipped to board orientation (Y down) and moved so that its
// bounding box starts at the origin.
func ImportDXF(path string, edgeWidth geom.Length) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var lines [][2]fpt
	var circles []board.Hole
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			lines = append(lines, [2]fpt{{e.Start[0], e.Start[1]}, {e.End[0], e.End[1]}})

		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			lines = append(lines, chain(pts)...)

		case *entity.Arc:
			lines = append(lines, chain(arcToPoints(e, arcSegments))...)

		case *entity.Circle:
			circles = append(circles, board.Hole{
				Pos:      toBoard(fpt{e.Center[0], e.Center[1]}),
				Diameter: geom.FromMM(2 * e.Radius),
			})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	doc := board.NewDocument()
	degenerate := 0
	for _, l := range lines {
		seg := geom.Segment{Start: toBoard(l[0]), End: toBoard(l[1]), Width: edgeWidth}
		if seg.Start == seg.End {
			degenerate++
			continue
		}
		doc.Add(board.OutlineSegment{Segment: seg})
	}
	if degenerate > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d zero-length segments", degenerate))
	}

	if len(doc.Segments()) == 0 {
		result.Errors = append(result.Errors, "No outline found in DXF file")
		return result
	}
	for _, c := range circles {
		doc.Add(c)
	}

	if open := openEnds(doc.Segments()); open > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Outline is not closed (%d open ends)", open))
	}

	// Normalise so the outline's centreline box starts at (0, 0)
	box, _ := doc.OutlineBounds()
	half := edgeWidth / 2
	doc.Move(geom.Pt(-(box.X + half), -(box.Y + half)))

	result.Board = doc
	return result
}

// toBoard converts a DXF point to board coordinates.
func toBoard(p fpt) geom.Point {
	return geom.Pt(geom.FromMM(p.x), geom.FromMM(-p.y))
}

// chain turns a point sequence into consecutive line pairs.
func chain(pts []fpt) [][2]fpt {
	out := make([][2]fpt, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, [2]fpt{pts[i], pts[i+1]})
	}
	return out
}

// lwPolylinePoints returns the polyline as a closed point sequence, with
// bulged spans replaced by chords.
func lwPolylinePoints(lw *entity.LwPolyline) []fpt {
	n := len(lw.Vertices)
	if n < 2 {
		return nil
	}

	var pts []fpt
	for i := 0; i < n; i++ {
		cur := fpt{lw.Vertices[i][0], lw.Vertices[i][1]}
		next := fpt{lw.Vertices[(i+1)%n][0], lw.Vertices[(i+1)%n][1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			arc := bulgeArcPoints(cur, next, bulge, arcSegments)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, cur)
		}
	}

	// Close the loop unless the last vertex already repeats the first
	if pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return pts
}

// bulgeArcPoints generates points along the arc between p1 and p2 described
// by a DXF bulge, the tangent of a quarter of the included angle.
func bulgeArcPoints(p1, p2 fpt, bulge float64, numSegments int) []fpt {
	mx, my := (p1.x+p2.x)/2, (p1.y+p2.y)/2
	dx, dy := p2.x-p1.x, p2.y-p1.y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return []fpt{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chordLen, dx/chordLen
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx, cy := mx+perpX*dist, my+perpY*dist

	start := math.Atan2(p1.y-cy, p1.x-cx)
	end := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 {
		if end > start {
			end -= 2 * math.Pi
		}
	} else if end < start {
		end += 2 * math.Pi
	}

	pts := make([]fpt, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = fpt{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	// Pin the ends so adjacent entities still meet exactly
	pts[0], pts[numSegments] = p1, p2
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of points.
func arcToPoints(a *entity.Arc, numSegments int) []fpt {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]fpt, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = fpt{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// openEnds counts segment endpoints that no other segment shares.
func openEnds(segs []geom.Segment) int {
	degree := make(map[geom.Point]int, 2*len(segs))
	for _, s := range segs {
		degree[s.Start]++
		degree[s.End]++
	}
	open := 0
	for _, d := range degree {
		if d%2 != 0 {
			open++
		}
	}
	return open
}
