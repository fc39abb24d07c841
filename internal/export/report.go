package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

// Sheet names of the panel report workbook.
const (
	SheetSummary = "Summary"
	SheetCells   = "Cells"
	SheetDrill   = "Drill"
)

// ExportReport writes an XLSX workbook with the settings and layout summary,
// the board cell positions and the drill table.
func ExportReport(path string, doc *board.Document, res engine.Result, settings model.PanelSettings) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetCells, SheetDrill} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Panel ID", res.ID},
		{"Panel width (mm)", res.Frame.W.MM()},
		{"Panel height (mm)", res.Frame.H.MM()},
		{"Board width (mm)", res.BoardW.MM()},
		{"Board height (mm)", res.BoardH.MM()},
		{"Outline thickness (mm)", res.Thickness.MM()},
		{"Tabs placed", res.TabsPlaced},
		{"Tabs dropped", res.TabsDropped},
	}
	for _, row := range settingsRows(settings) {
		summary = append(summary, []interface{}{row[0], row[1]})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 40); err != nil {
		return err
	}

	cells := [][]interface{}{{"Column", "Row", "X (mm)", "Y (mm)", "Offset X (mm)", "Offset Y (mm)"}}
	for _, c := range res.Cells {
		cells = append(cells, []interface{}{
			c.Col + 1, c.Row + 1,
			c.Origin.X.MM(), c.Origin.Y.MM(),
			c.Offset.X.MM(), c.Offset.Y.MM(),
		})
	}
	if err := writeRows(f, SheetCells, cells); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetCells, "A1", "F1", bold); err != nil {
		return err
	}

	if err := writeRows(f, SheetDrill, drillRows(doc)); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetDrill, "A1", "C1", bold); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// drillRows tallies holes by diameter, smallest first.
func drillRows(doc *board.Document) [][]interface{} {
	count := map[geom.Length]int{}
	for _, h := range doc.Holes() {
		count[h.Diameter]++
	}
	sizes := make([]geom.Length, 0, len(count))
	for d := range count {
		sizes = append(sizes, d)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	rows := [][]interface{}{{"Tool", "Diameter (mm)", "Count"}}
	for i, d := range sizes {
		rows = append(rows, []interface{}{fmt.Sprintf("T%d", i+1), d.MM(), count[d]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
