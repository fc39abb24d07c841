package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

const svgMargin = 2.0

var (
	svgOutline  = canvas.Hex("#1b5e20")
	svgHole     = canvas.Hex("#37474f")
	svgFiducial = canvas.Hex("#daa520")
	svgGraphic  = canvas.Hex("#9e9e9e")
	noFill      = color.RGBA{0, 0, 0, 0}
)

// WriteSVG renders a top view of the document in millimetres. The origin
// is the top-left corner of the document bounds.
func WriteSVG(w io.Writer, doc *board.Document) error {
	box, ok := doc.Bounds()
	if !ok {
		return fmt.Errorf("nothing to render")
	}
	width := box.W.MM() + 2*svgMargin
	height := box.H.MM() + 2*svgMargin

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	x := func(v geom.Length) float64 { return (v - box.X).MM() + svgMargin }
	y := func(v geom.Length) float64 { return (v - box.Y).MM() + svgMargin }

	ctx.SetFillColor(noFill)
	for _, e := range doc.Items() {
		g, ok := e.Item.(board.Graphic)
		if !ok || len(g.Points) < 2 {
			continue
		}
		p := &canvas.Path{}
		p.MoveTo(x(g.Points[0].X), y(g.Points[0].Y))
		for _, pt := range g.Points[1:] {
			p.LineTo(x(pt.X), y(pt.Y))
		}
		ctx.SetStrokeColor(svgGraphic)
		ctx.SetStrokeWidth(g.Width.MM())
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetStrokeColor(svgOutline)
	for _, s := range doc.Segments() {
		p := &canvas.Path{}
		p.MoveTo(x(s.Start.X), y(s.Start.Y))
		p.LineTo(x(s.End.X), y(s.End.Y))
		ctx.SetStrokeWidth(s.Width.MM())
		ctx.DrawPath(0, 0, p)
	}

	ctx.SetStrokeColor(svgHole)
	ctx.SetStrokeWidth(0.05)
	for _, h := range doc.Holes() {
		ctx.DrawPath(x(h.Pos.X), y(h.Pos.Y), canvas.Circle(h.Diameter.MM()/2))
	}

	ctx.SetStrokeColor(noFill)
	ctx.SetFillColor(svgFiducial)
	for _, f := range doc.Fiducials() {
		if f.Side == board.SideBack {
			continue
		}
		ctx.DrawPath(x(f.Pos.X), y(f.Pos.Y), canvas.Circle(f.Copper.MM()/2))
	}

	out := svg.New(w, width, height, nil)
	c.RenderTo(out)
	return out.Close()
}

// ExportSVG writes the SVG preview to path.
func ExportSVG(path string, doc *board.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create SVG file: %w", err)
	}
	if err := WriteSVG(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write SVG: %w", err)
	}
	return f.Close()
}
