package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/pcbpanel/internal/board"
)

// DXF layer names used for the fabrication outline.
const (
	dxfLayerEdge      = board.LayerEdgeCuts
	dxfLayerNPTH      = "NPTH"
	dxfLayerFiducialF = "F.Fiducials"
	dxfLayerFiducialB = "B.Fiducials"
)

// ExportDXF writes the panel outline, holes and fiducials as a DXF drawing
// in millimetres. Y is flipped back to the usual DXF orientation (Y up).
// Other graphics are not part of the outline drawing and are left out.
func ExportDXF(path string, doc *board.Document) error {
	if doc == nil || len(doc.Segments()) == 0 {
		return fmt.Errorf("no outline to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{dxfLayerEdge, color.Yellow},
		{dxfLayerNPTH, color.Cyan},
		{dxfLayerFiducialF, color.Red},
		{dxfLayerFiducialB, color.Blue},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add DXF layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(dxfLayerEdge); err != nil {
		return err
	}
	for _, s := range doc.Segments() {
		if _, err := d.Line(s.Start.X.MM(), -s.Start.Y.MM(), 0, s.End.X.MM(), -s.End.Y.MM(), 0); err != nil {
			return fmt.Errorf("write outline segment: %w", err)
		}
	}

	if err := d.ChangeLayer(dxfLayerNPTH); err != nil {
		return err
	}
	for _, h := range doc.Holes() {
		if _, err := d.Circle(h.Pos.X.MM(), -h.Pos.Y.MM(), 0, h.Diameter.MM()/2); err != nil {
			return fmt.Errorf("write hole: %w", err)
		}
	}

	for _, f := range doc.Fiducials() {
		layer := dxfLayerFiducialF
		if f.Side == board.SideBack {
			layer = dxfLayerFiducialB
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		if _, err := d.Circle(f.Pos.X.MM(), -f.Pos.Y.MM(), 0, f.Copper.MM()/2); err != nil {
			return fmt.Errorf("write fiducial: %w", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save DXF %s: %w", path, err)
	}
	return nil
}
