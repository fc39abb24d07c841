package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/engine"
	"github.com/piwi3910/pcbpanel/internal/geom"
)

var (
	colorPanel    = color.NRGBA{R: 200, G: 230, B: 201, A: 255}
	colorBoard    = color.NRGBA{R: 129, G: 199, B: 132, A: 255}
	colorOutline  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	colorHole     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorFiducial = color.NRGBA{R: 218, G: 165, B: 32, A: 255}
	colorDropped  = color.NRGBA{R: 220, G: 0, B: 0, A: 255}
)

// PanelCanvas renders a top view of a laid out panel.
type PanelCanvas struct {
	widget.BaseWidget
	doc       *board.Document
	result    engine.Result
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(doc *board.Document, result engine.Result, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		doc:       doc,
		result:    result,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

// scale returns pixels per millimetre so that the frame fits the bounds.
func (pc *PanelCanvas) scale() float32 {
	frame := pc.result.Frame
	if frame.W <= 0 || frame.H <= 0 {
		return 0
	}
	scale := pc.maxWidth / float32(frame.W.MM())
	if s := pc.maxHeight / float32(frame.H.MM()); s < scale {
		scale = s
	}
	return scale
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	scale := r.pc.scale()
	if scale == 0 || r.pc.doc == nil {
		return
	}
	frame := r.pc.result.Frame
	pos := func(p geom.Point) fyne.Position {
		return fyne.NewPos(float32((p.X-frame.X).MM())*scale, float32((p.Y-frame.Y).MM())*scale)
	}

	bg := canvas.NewRectangle(colorPanel)
	bg.Resize(fyne.NewSize(float32(frame.W.MM())*scale, float32(frame.H.MM())*scale))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	bw := float32(r.pc.result.BoardW.MM()) * scale
	bh := float32(r.pc.result.BoardH.MM()) * scale
	for _, c := range r.pc.result.Cells {
		cell := canvas.NewRectangle(colorBoard)
		cell.Resize(fyne.NewSize(bw, bh))
		cell.Move(pos(c.Origin))
		r.objects = append(r.objects, cell)

		if bw > 30 && bh > 16 {
			label := canvas.NewText(fmt.Sprintf("%d,%d", c.Col+1, c.Row+1), color.Black)
			label.TextSize = 10
			label.Move(pos(c.Origin).AddXY(3, 2))
			r.objects = append(r.objects, label)
		}
	}

	for _, s := range r.pc.doc.Segments() {
		line := canvas.NewLine(colorOutline)
		line.StrokeWidth = 1
		line.Position1 = pos(s.Start)
		line.Position2 = pos(s.End)
		r.objects = append(r.objects, line)
	}

	for _, h := range r.pc.doc.Holes() {
		r.objects = append(r.objects, r.circle(pos(h.Pos), h.Diameter, scale, colorHole, colorOutline))
	}
	for _, f := range r.pc.doc.Fiducials() {
		if f.Side == board.SideBack {
			continue
		}
		r.objects = append(r.objects, r.circle(pos(f.Pos), f.Copper, scale, colorFiducial, color.Transparent))
	}

	// Tabs that could not be cut
	for _, d := range r.pc.result.Dropped {
		marker := r.circle(pos(d.Pos), geom.Millimeter, scale, color.Transparent, colorDropped)
		r.objects = append(r.objects, marker)
	}
}

// circle returns a circle of the given diameter centred on c. Tiny circles
// are kept visible.
func (r *panelCanvasRenderer) circle(c fyne.Position, diameter geom.Length, scale float32, fill, stroke color.Color) *canvas.Circle {
	d := float32(diameter.MM()) * scale
	if d < 2 {
		d = 2
	}
	circle := canvas.NewCircle(fill)
	circle.StrokeColor = stroke
	circle.StrokeWidth = 1
	circle.Resize(fyne.NewSize(d, d))
	circle.Move(c.SubtractXY(d/2, d/2))
	return circle
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	scale := r.pc.scale()
	frame := r.pc.result.Frame
	return fyne.NewSize(float32(frame.W.MM())*scale, float32(frame.H.MM())*scale)
}

// RenderPanelResult creates a scrollable view of the panel with a summary.
func RenderPanelResult(doc *board.Document, result *engine.Result) fyne.CanvasObject {
	if doc == nil || result == nil || len(result.Cells) == 0 {
		return widget.NewLabel("No panel yet. Open a board outline to build one.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"Panel %.2f × %.2f mm with %d boards of %.2f × %.2f mm",
		result.Frame.W.MM(), result.Frame.H.MM(), len(result.Cells),
		result.BoardW.MM(), result.BoardH.MM(),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{header, NewPanelCanvas(doc, *result, 900, 560), widget.NewSeparator()}

	if result.TabsDropped > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d tabs were dropped because the board edge is not continuous there.",
			result.TabsDropped,
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	summary := widget.NewLabel(fmt.Sprintf("Tabs placed: %d | Holes: %d | Panel ID: %s",
		result.TabsPlaced, len(doc.Holes()), result.ID))
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}
