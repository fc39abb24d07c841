package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

// WriteDrill writes the panel's non-plated holes as an Excellon drill file
// in metric units. Tools are numbered by increasing diameter; holes keep
// their document order within a tool.
func WriteDrill(w io.Writer, doc *board.Document) error {
	byTool := map[geom.Length][]geom.Point{}
	for _, h := range doc.Holes() {
		byTool[h.Diameter] = append(byTool[h.Diameter], h.Pos)
	}
	sizes := make([]geom.Length, 0, len(byTool))
	for d := range byTool {
		sizes = append(sizes, d)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "M48")
	fmt.Fprintln(bw, "; NPTH drill file")
	fmt.Fprintln(bw, "METRIC")
	for i, d := range sizes {
		fmt.Fprintf(bw, "T%dC%.3f\n", i+1, d.MM())
	}
	fmt.Fprintln(bw, "%")
	fmt.Fprintln(bw, "G90")
	fmt.Fprintln(bw, "G05")
	for i, d := range sizes {
		fmt.Fprintf(bw, "T%d\n", i+1)
		for _, p := range byTool[d] {
			// Drill files use Y up
			fmt.Fprintf(bw, "X%.3fY%.3f\n", p.X.MM(), -p.Y.MM())
		}
	}
	fmt.Fprintln(bw, "M30")
	return bw.Flush()
}

// ExportDrill writes the Excellon drill file to path.
func ExportDrill(path string, doc *board.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create drill file: %w", err)
	}
	if err := WriteDrill(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write drill file: %w", err)
	}
	return f.Close()
}
