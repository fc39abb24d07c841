// Package engine lays out a panel: the picture frame, the grid of board
// copies, the breakaway tabs between them and the frame holes.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/piwi3910/pcbpanel/internal/board"
	"github.com/piwi3910/pcbpanel/internal/geom"
	"github.com/piwi3910/pcbpanel/internal/model"
)

const (
	// PageOffset is the margin the finished panel is moved by.
	PageOffset = 20 * geom.Millimeter

	// HitAccuracy is the tolerance used when probing the outline for a tab gap.
	HitAccuracy geom.Length = 10

	MouseBiteHole  geom.Length = 500_000 // 0.5mm perforation drill
	mouseBiteInset geom.Length = 100_000 // rows sit 0.1mm inside the gap
	mouseBiteStep              = geom.Millimeter
)

// Duplicator copies the content of a source board into the panel document at
// the given offset.
type Duplicator interface {
	AppendBoard(dst, src *board.Document, offset geom.Point) error
}

// Cell is one board copy in the panel grid.
type Cell struct {
	Col    int        `json:"col"`
	Row    int        `json:"row"`
	Origin geom.Point `json:"origin"` // top-left of the board in panel coordinates
	Offset geom.Point `json:"offset"` // translation from source to panel coordinates
}

// DroppedTab records a tab that could not be cut because the outline was not
// continuous on both sides of the gap.
type DroppedTab struct {
	Pos  geom.Point `json:"pos"`
	Axis geom.Axis  `json:"axis"`
}

// Result describes a finished layout. All positions are in panel coordinates,
// after the page offset has been applied.
type Result struct {
	ID          string       `json:"id"`
	Frame       geom.Rect    `json:"frame"`
	BoardW      geom.Length  `json:"board_w"`
	BoardH      geom.Length  `json:"board_h"`
	Thickness   geom.Length  `json:"thickness"`
	Cells       []Cell       `json:"cells"`
	TabsPlaced  int          `json:"tabs_placed"`
	TabsDropped int          `json:"tabs_dropped"`
	Dropped     []DroppedTab `json:"dropped,omitempty"`
}

// Option configures a Panelizer.
type Option func(*Panelizer)

// WithLogger sets the logger used for layout diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panelizer) { p.Logger = l }
}

// WithDuplicator replaces the default board copier.
func WithDuplicator(d Duplicator) Option {
	return func(p *Panelizer) { p.Duplicator = d }
}

// Panelizer builds panels from one source board.
type Panelizer struct {
	Settings   model.PanelSettings
	Logger     *slog.Logger
	Duplicator Duplicator
}

func New(settings model.PanelSettings, opts ...Option) *Panelizer {
	p := &Panelizer{
		Settings: settings,
		Logger:   slog.New(slog.DiscardHandler),
		Duplicator: board.Copier{
			TrimSilkscreen: settings.TrimSilkscreen,
			Spacing:        settings.SpacingWidth,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Panelize lays out src into a fresh document using the default copier.
func Panelize(settings model.PanelSettings, src *board.Document) (*board.Document, Result, error) {
	doc := board.NewDocument()
	res, err := New(settings).Layout(doc, src)
	if err != nil {
		return nil, Result{}, err
	}
	return doc, res, nil
}

// Layout appends the panel built from src to doc. Settings and source are
// checked before anything is written; once layout starts, tabs that cannot
// be cut are dropped rather than failing the run.
func (p *Panelizer) Layout(doc *board.Document, src *board.Document) (Result, error) {
	s := p.Settings
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if src == nil {
		return Result{}, fmt.Errorf("%w: no source board", model.ErrMalformedInput)
	}

	box, ok := src.OutlineBounds()
	if !ok {
		return Result{}, fmt.Errorf("%w: source board is empty", model.ErrMalformedInput)
	}
	thickness := src.OutlineThickness()
	if thickness == 0 {
		p.Logger.Warn("source board has no outline thickness, using zero")
	}

	// Centreline box of the source outline
	inner := box.Inflate(-thickness/2, -thickness/2)
	boardW, boardH := inner.W, inner.H
	if boardW <= 0 || boardH <= 0 {
		return Result{}, fmt.Errorf("%w: source board is %.3fx%.3fmm",
			model.ErrMalformedInput, boardW.MM(), boardH.MM())
	}

	if src.CopperLayers > doc.CopperLayers {
		doc.CopperLayers = src.CopperLayers
	}

	ow, sw := s.OutlineWidth, s.SpacingWidth
	width := 2*ow + sw + (sw+boardW)*geom.Length(s.BoardsX)
	height := 2*ow + sw + (sw+boardH)*geom.Length(s.BoardsY)

	p.Logger.Debug("panel layout",
		"board_w_mm", boardW.MM(), "board_h_mm", boardH.MM(),
		"width_mm", width.MM(), "height_mm", height.MM(),
		"boards_x", s.BoardsX, "boards_y", s.BoardsY, "tab_mode", s.TabMode)

	AddOutlineSquare(doc, 0, 0, width, height, thickness)
	AddOutlineSquare(doc, ow, ow, width-2*ow, height-2*ow, thickness)

	// Bottom-right corner is left empty so the panel orientation is obvious
	half := ow / 2
	AddHole(doc, half, half, s.OutlineHole)
	AddHole(doc, width-half, half, s.OutlineHole)
	AddHole(doc, half, height-half, s.OutlineHole)

	if s.FiducialsEnabled() {
		for _, side := range []board.Side{board.SideFront, board.SideBack} {
			AddFiducial(doc, 3*half, half, s.FiducialCopper, s.FiducialMask, side)
			AddFiducial(doc, width-3*half, half, s.FiducialCopper, s.FiducialMask, side)
			AddFiducial(doc, 3*half, height-half, s.FiducialCopper, s.FiducialMask, side)
		}
	}

	page := geom.Pt(PageOffset, PageOffset)
	res := Result{
		ID:        uuid.NewString(),
		Frame:     geom.NewRect(PageOffset, PageOffset, width, height),
		BoardW:    boardW,
		BoardH:    boardH,
		Thickness: thickness,
	}

	cellOrigin := func(x, y int) geom.Point {
		return geom.Pt(
			ow+sw+(sw+boardW)*geom.Length(x),
			ow+sw+(sw+boardH)*geom.Length(y),
		)
	}

	for y := 0; y < s.BoardsY; y++ {
		for x := 0; x < s.BoardsX; x++ {
			origin := cellOrigin(x, y)
			offset := origin.Sub(inner.Origin())
			if err := p.Duplicator.AppendBoard(doc, src, offset); err != nil {
				return Result{}, fmt.Errorf("append board %d,%d: %w", x, y, err)
			}
			res.Cells = append(res.Cells, Cell{
				Col:    x,
				Row:    y,
				Origin: origin.Add(page),
				Offset: offset.Add(page),
			})
		}
	}

	placer := TabPlacer{Mode: s.TabMode, TabWidth: s.TabWidth}
	if s.TabMode == model.TabModeAuto {
		profile := ProfileFromBoard(src, inner, HitAccuracy)
		placer.Profile = &profile
	}
	tabsX := placer.Place(geom.AxisX, boardW, s.TabsX)
	tabsY := placer.Place(geom.AxisY, boardH, s.TabsY)

	// Every cell has a seam above it and one to its left; the extra row and
	// column cover the seams against the bottom and right of the frame.
	for y := 0; y <= s.BoardsY; y++ {
		for x := 0; x <= s.BoardsX; x++ {
			origin := cellOrigin(x, y)
			if x != s.BoardsX {
				for _, tab := range tabsX {
					p.cutTab(doc, &res, tab, origin.X+tab.Offset, origin.Y-sw)
				}
			}
			if y != s.BoardsY {
				for _, tab := range tabsY {
					p.cutTab(doc, &res, tab, origin.Y+tab.Offset, origin.X-sw)
				}
			}
		}
	}

	doc.Move(page)
	for i := range res.Dropped {
		res.Dropped[i].Pos = res.Dropped[i].Pos.Add(page)
	}
	return res, nil
}

// cutTab opens the outline on both sides of a spacing gap and bridges it with
// a perforated tab. along is the tab centre along tab.Axis; across is where
// the gap starts on the other axis.
func (p *Panelizer) cutTab(doc *board.Document, res *Result, tab Tab, along, across geom.Length) {
	sw := p.Settings.SpacingWidth
	tw := tab.Width
	axis := tab.Axis

	probes := [2]geom.Rect{
		probeRect(axis, along-tw/2, across, tw),
		probeRect(axis, along-tw/2, across+sw, tw),
	}

	var ids [2]board.ID
	for i, probe := range probes {
		id, ok := findBreakable(doc, probe, axis)
		if !ok {
			pos := pointOn(axis, along, across)
			p.Logger.Info("dropping tab, outline is not continuous",
				"axis", axis.String(), "x_mm", pos.X.MM(), "y_mm", pos.Y.MM())
			res.TabsDropped++
			res.Dropped = append(res.Dropped, DroppedTab{Pos: pos, Axis: axis})
			return
		}
		ids[i] = id
	}

	for i, probe := range probes {
		BreakOutline(doc, ids[i], probe, axis)
	}

	// Mouse bites: one row just inside each side of the gap
	bites := int(tw / (2 * mouseBiteStep))
	for _, inset := range []geom.Length{mouseBiteInset, sw - mouseBiteInset} {
		c := pointOn(axis, along, across+inset)
		AddHole(doc, c.X, c.Y, MouseBiteHole)
		for i := 1; i <= bites; i++ {
			d := geom.Length(i) * mouseBiteStep
			lo := pointOn(axis, along-d, across+inset)
			hi := pointOn(axis, along+d, across+inset)
			AddHole(doc, lo.X, lo.Y, MouseBiteHole)
			AddHole(doc, hi.X, hi.Y, MouseBiteHole)
		}
	}

	thickness := res.Thickness
	for _, edge := range []geom.Length{along - tw/2, along - tw/2 + tw} {
		a := pointOn(axis, edge, across)
		b := pointOn(axis, edge, across+sw)
		AddOutline(doc, a.X, a.Y, b.X, b.Y, thickness)
	}
	res.TabsPlaced++
}

// pointOn maps a coordinate along axis and one across it to a point.
func pointOn(axis geom.Axis, along, across geom.Length) geom.Point {
	if axis == geom.AxisX {
		return geom.Pt(along, across)
	}
	return geom.Pt(across, along)
}

// probeRect is a zero-thickness line of length n starting at (start, at).
func probeRect(axis geom.Axis, start, at, n geom.Length) geom.Rect {
	if axis == geom.AxisX {
		return geom.NewRect(start, at, n, 0)
	}
	return geom.NewRect(at, start, 0, n)
}

// findBreakable returns the first outline segment hit by probe that runs
// along axis and covers the whole probe.
func findBreakable(doc *board.Document, probe geom.Rect, axis geom.Axis) (board.ID, bool) {
	for _, id := range doc.HitTest(probe, HitAccuracy) {
		item, _ := doc.Get(id)
		seg, ok := item.(board.OutlineSegment)
		if !ok || !seg.IsAlong(axis) {
			continue
		}
		span := seg.Span(axis)
		if span.Low <= probe.Low(axis) && probe.High(axis) <= span.High {
			return id, true
		}
	}
	return 0, false
}
