package board

import "github.com/piwi3910/pcbpanel/internal/geom"

// Copier duplicates a source board into a panel document. It is the default
// board duplication collaborator used by the layout engine.
type Copier struct {
	// TrimSilkscreen drops silkscreen graphics that stick out of the board
	// by more than half the board spacing.
	TrimSilkscreen bool
	Spacing        geom.Length
}

// AppendBoard copies every item of src into dst, translated by offset, and
// merges the source's nets and copper layer count into dst.
func (c Copier) AppendBoard(dst, src *Document, offset geom.Point) error {
	trimBox, hasBox := src.OutlineBounds()
	if hasBox {
		t := src.OutlineThickness()
		half := c.Spacing / 2
		trimBox = trimBox.Inflate(-t/2, -t/2).Inflate(half, half)
	}

	for _, e := range src.Items() {
		switch it := e.Item.(type) {
		case OutlineSegment, Hole, Fiducial:
			dst.Add(it.translate(offset))
		case Graphic:
			if c.TrimSilkscreen && hasBox && isSilkscreen(it.Layer) && !trimBox.ContainsRect(it.Bounds()) {
				continue
			}
			dst.Add(it.translate(offset))
			dst.AddNets(it.Net)
		}
	}

	dst.AddNets(src.Nets...)
	if src.CopperLayers > dst.CopperLayers {
		dst.CopperLayers = src.CopperLayers
	}
	return nil
}

func isSilkscreen(layer string) bool {
	return layer == LayerFSilk || layer == LayerBSilk
}
