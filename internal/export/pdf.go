// Package export writes finished panels to fabrication and review formats:
// DXF outline, Excellon drill file, PDF drawing, SVG preview and an XLSX
// report.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

// PanelInfo is the traceability record encoded into the drawing's QR code.
type PanelInfo struct {
	ID          string  `json:"id"`
	Source      string  `json:"source,omitempty"`
	Width       float64 `json:"width_mm"`
	Height      float64 `json:"height_mm"`
	BoardsX     int     `json:"boards_x"`
	BoardsY     int     `json:"boards_y"`
	TabsX       int     `json:"tabs_x"`
	TabsY       int     `json:"tabs_y"`
	TabMode     string  `json:"tab_mode"`
	TabsPlaced  int     `json:"tabs_placed"`
	TabsDropped int     `json:"tabs_dropped"`
}

// CollectPanelInfo builds the traceability record for a layout.
func CollectPanelInfo(res engine.Result, settings model.PanelSettings) PanelInfo {
	return PanelInfo{
		ID:          res.ID,
		Source:      settings.Source,
		Width:       res.Frame.W.MM(),
		Height:      res.Frame.H.MM(),
		BoardsX:     settings.BoardsX,
		BoardsY:     settings.BoardsY,
		TabsX:       settings.TabsX,
		TabsY:       settings.TabsY,
		TabMode:     settings.TabMode.String(),
		TabsPlaced:  res.TabsPlaced,
		TabsDropped: res.TabsDropped,
	}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	qrSize       = 35.0
)

// ExportPDF renders a fabrication drawing of the panel: a scaled drawing
// with a QR traceability code on the first page and a summary of settings
// and board cells after it.
func ExportPDF(path string, doc *board.Document, res engine.Result, settings model.PanelSettings) error {
	if doc == nil || res.Frame.W <= 0 || res.Frame.H <= 0 {
		return fmt.Errorf("no panel to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderPanelPage(pdf, doc, res, settings); err != nil {
		return err
	}

	pdf.AddPage()
	renderSummaryPage(pdf, res, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPanelPage draws the panel on the current page.
func renderPanelPage(pdf *fpdf.Fpdf, doc *board.Document, res engine.Result, settings model.PanelSettings) error {
	frame := res.Frame

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Panel %.2f x %.2f mm (%d x %d boards)", frame.W.MM(), frame.H.MM(), settings.BoardsX, settings.BoardsY)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Board: %.2f x %.2f mm | Tab mode: %s | Tabs placed: %d | Dropped: %d",
		res.BoardW.MM(), res.BoardH.MM(), settings.TabMode, res.TabsPlaced, res.TabsDropped)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - qrSize - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom - 8

	scale := math.Min(drawWidth/frame.W.MM(), drawHeight/frame.H.MM())
	canvasW := frame.W.MM() * scale
	canvasH := frame.H.MM() * scale
	offsetX := marginLeft + 5 + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	tx := func(x geom.Length) float64 { return offsetX + (x-frame.X).MM()*scale }
	ty := func(y geom.Length) float64 { return offsetY + (y-frame.Y).MM()*scale }

	// Panel material
	pdf.SetFillColor(200, 230, 201)
	pdf.SetDrawColor(200, 230, 201)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "F")

	// Board cells
	pdf.SetFillColor(129, 199, 132)
	for _, c := range res.Cells {
		pdf.Rect(tx(c.Origin.X), ty(c.Origin.Y), res.BoardW.MM()*scale, res.BoardH.MM()*scale, "F")
	}

	// Outline
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	for _, s := range doc.Segments() {
		pdf.Line(tx(s.Start.X), ty(s.Start.Y), tx(s.End.X), ty(s.End.Y))
	}

	// Holes
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineWidth(0.1)
	for _, h := range doc.Holes() {
		pdf.Circle(tx(h.Pos.X), ty(h.Pos.Y), math.Max(h.Diameter.MM()*scale/2, 0.1), "FD")
	}

	// Fiducials: copper dot inside the mask opening
	for _, f := range doc.Fiducials() {
		if f.Side == board.SideBack {
			continue
		}
		pdf.SetFillColor(255, 255, 255)
		pdf.Circle(tx(f.Pos.X), ty(f.Pos.Y), f.Mask.MM()*scale/2, "F")
		pdf.SetFillColor(218, 165, 32)
		pdf.Circle(tx(f.Pos.X), ty(f.Pos.Y), f.Copper.MM()*scale/2, "F")
	}

	// Dropped tabs
	pdf.SetDrawColor(220, 0, 0)
	pdf.SetLineWidth(0.4)
	for _, d := range res.Dropped {
		x, y := tx(d.Pos.X), ty(d.Pos.Y)
		pdf.Line(x-1.5, y-1.5, x+1.5, y+1.5)
		pdf.Line(x-1.5, y+1.5, x+1.5, y-1.5)
	}

	drawDimensionAnnotations(pdf, frame, offsetX, offsetY, canvasW, canvasH)

	return drawQRCode(pdf, CollectPanelInfo(res, settings), pageWidth-marginRight-qrSize, drawAreaTop)
}

// drawDimensionAnnotations adds width and height labels outside the frame.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, frame geom.Rect, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f mm", frame.W.MM())
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f mm", frame.H.MM())
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawQRCode places the traceability QR code with the panel ID below it.
func drawQRCode(pdf *fpdf.Fpdf, info PanelInfo, x, y float64) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal panel info: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize+1)
	pdf.CellFormat(qrSize, 3, info.ID, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// renderSummaryPage lists the settings and the board cells.
func renderSummaryPage(pdf *fpdf.Fpdf, res engine.Result, settings model.PanelSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Panel Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range settingsRows(settings) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Boards", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 25, 50, 50}
	headers := []string{"Column", "Row", "X (mm)", "Y (mm)"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, c := range res.Cells {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}
		row := []string{
			fmt.Sprintf("%d", c.Col+1),
			fmt.Sprintf("%d", c.Row+1),
			fmt.Sprintf("%.3f", c.Origin.X.MM()),
			fmt.Sprintf("%.3f", c.Origin.Y.MM()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos := marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 5
	}
}

// settingsRows lists the settings as label/value pairs. The XLSX report uses
// the same rows.
func settingsRows(s model.PanelSettings) [][2]string {
	fid := "off"
	if s.FiducialsEnabled() {
		fid = fmt.Sprintf("%.2f mm copper / %.2f mm mask", s.FiducialCopper.MM(), s.FiducialMask.MM())
	}
	return [][2]string{
		{"Source", s.Source},
		{"Boards", fmt.Sprintf("%d x %d", s.BoardsX, s.BoardsY)},
		{"Frame width", fmt.Sprintf("%.2f mm", s.OutlineWidth.MM())},
		{"Frame hole", fmt.Sprintf("%.2f mm", s.OutlineHole.MM())},
		{"Spacing", fmt.Sprintf("%.2f mm", s.SpacingWidth.MM())},
		{"Tab width", fmt.Sprintf("%.2f mm", s.TabWidth.MM())},
		{"Tabs", fmt.Sprintf("%d x %d (%s)", s.TabsX, s.TabsY, s.TabMode)},
		{"Trim silkscreen", fmt.Sprintf("%t", s.TrimSilkscreen)},
		{"Fiducials", fid},
	}
}
