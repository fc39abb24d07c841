// Package board holds the in-memory board document the panel engine reads
// from and writes into: Edge-Cuts segments, holes, fiducials and any other
// graphics, addressed by stable sequential IDs.
package board

import (
	"sort"

	"github.com/piwi3910/pcbpanel/internal/geom"
)

// Layer names used by the document.
const (
	LayerEdgeCuts = "Edge.Cuts"
	LayerFSilk    = "F.SilkS"
	LayerBSilk    = "B.SilkS"
)

// Side selects the copper side a fiducial is placed on.
type Side int

const (
	SideFront Side = iota
	SideBack
)

func (s Side) String() string {
	if s == SideBack {
		return "back"
	}
	return "front"
}

// ID identifies an item within one document.
type ID int

// Item is one of OutlineSegment, Hole, Fiducial or Graphic.
type Item interface {
	Bounds() geom.Rect
	translate(d geom.Point) Item
	isItem()
}

// OutlineSegment is a straight line on the Edge-Cuts layer.
type OutlineSegment struct {
	geom.Segment
}

// Hole is a non-plated through hole.
type Hole struct {
	Pos      geom.Point  `json:"pos"`
	Diameter geom.Length `json:"diameter"`
}

// Fiducial is a bare copper dot with a larger solder-mask opening.
type Fiducial struct {
	Pos    geom.Point  `json:"pos"`
	Copper geom.Length `json:"copper"`
	Mask   geom.Length `json:"mask"`
	Side   Side        `json:"side"`
}

// Graphic is any other drawing: tracks, silkscreen, zones. Points form an
// open polyline drawn with Width.
type Graphic struct {
	Layer  string       `json:"layer"`
	Points []geom.Point `json:"points"`
	Width  geom.Length  `json:"width"`
	Net    string       `json:"net,omitempty"`
}

func (OutlineSegment) isItem() {}
func (Hole) isItem()           {}
func (Fiducial) isItem()       {}
func (Graphic) isItem()        {}

func (s OutlineSegment) Bounds() geom.Rect { return s.Segment.Bounds() }

func (h Hole) Bounds() geom.Rect { return circleBounds(h.Pos, h.Diameter) }

func (f Fiducial) Bounds() geom.Rect { return circleBounds(f.Pos, f.Mask) }

func (g Graphic) Bounds() geom.Rect {
	if len(g.Points) == 0 {
		return geom.Rect{}
	}
	r := geom.RectFromPoints(g.Points[0], g.Points[0])
	for _, p := range g.Points[1:] {
		r = r.Union(geom.RectFromPoints(p, p))
	}
	return r
}

func circleBounds(c geom.Point, d geom.Length) geom.Rect {
	return geom.NewRect(c.X-d/2, c.Y-d/2, d, d)
}

func (s OutlineSegment) translate(d geom.Point) Item {
	return OutlineSegment{Segment: s.Segment.Translate(d)}
}

func (h Hole) translate(d geom.Point) Item {
	h.Pos = h.Pos.Add(d)
	return h
}

func (f Fiducial) translate(d geom.Point) Item {
	f.Pos = f.Pos.Add(d)
	return f
}

func (g Graphic) translate(d geom.Point) Item {
	pts := make([]geom.Point, len(g.Points))
	for i, p := range g.Points {
		pts[i] = p.Add(d)
	}
	g.Points = pts
	return g
}

// Entry pairs an item with its ID.
type Entry struct {
	ID   ID
	Item Item
}

// Document is an ordered collection of board items. Iteration always follows
// insertion order so that results are reproducible.
type Document struct {
	CopperLayers int
	Nets         []string

	nextID ID
	order  []ID
	items  map[ID]Item
}

// NewDocument returns an empty two-layer document.
func NewDocument() *Document {
	return &Document{
		CopperLayers: 2,
		items:        make(map[ID]Item),
	}
}

// Add appends an item and returns its ID.
func (d *Document) Add(item Item) ID {
	d.nextID++
	id := d.nextID
	d.items[id] = item
	d.order = append(d.order, id)
	return id
}

// Get returns the item with the given ID.
func (d *Document) Get(id ID) (Item, bool) {
	it, ok := d.items[id]
	return it, ok
}

// Delete removes an item. It returns false if the ID is unknown.
func (d *Document) Delete(id ID) bool {
	if _, ok := d.items[id]; !ok {
		return false
	}
	delete(d.items, id)
	for i, o := range d.order {
		if o == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of items in the document.
func (d *Document) Len() int { return len(d.order) }

// Items returns all items in insertion order.
func (d *Document) Items() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, Entry{ID: id, Item: d.items[id]})
	}
	return out
}

// Segments returns the Edge-Cuts segments in insertion order.
func (d *Document) Segments() []geom.Segment {
	var segs []geom.Segment
	for _, id := range d.order {
		if s, ok := d.items[id].(OutlineSegment); ok {
			segs = append(segs, s.Segment)
		}
	}
	return segs
}

// Holes returns all holes in insertion order.
func (d *Document) Holes() []Hole {
	var holes []Hole
	for _, id := range d.order {
		if h, ok := d.items[id].(Hole); ok {
			holes = append(holes, h)
		}
	}
	return holes
}

// Fiducials returns all fiducials in insertion order.
func (d *Document) Fiducials() []Fiducial {
	var fids []Fiducial
	for _, id := range d.order {
		if f, ok := d.items[id].(Fiducial); ok {
			fids = append(fids, f)
		}
	}
	return fids
}

// Move translates every item in the document by offset.
func (d *Document) Move(offset geom.Point) {
	for _, id := range d.order {
		d.items[id] = d.items[id].translate(offset)
	}
}

// HitTest returns the IDs of the Edge-Cuts segments touching rect grown by
// accuracy, in insertion order.
func (d *Document) HitTest(rect geom.Rect, accuracy geom.Length) []ID {
	var hits []ID
	for _, id := range d.order {
		if s, ok := d.items[id].(OutlineSegment); ok && s.HitTest(rect, accuracy) {
			hits = append(hits, id)
		}
	}
	return hits
}

// OutlineBounds returns the bounding box of the Edge-Cuts outline, including
// the stroke width. When there is no outline it falls back to the bounds of
// every item; ok is false for an empty document.
func (d *Document) OutlineBounds() (geom.Rect, bool) {
	var box geom.Rect
	found := false
	for _, id := range d.order {
		s, ok := d.items[id].(OutlineSegment)
		if !ok {
			continue
		}
		half := s.Width / 2
		r := s.Bounds().Inflate(half, half)
		if !found {
			box, found = r, true
			continue
		}
		box = box.Union(r)
	}
	if found {
		return box, true
	}
	return d.Bounds()
}

// Bounds returns the bounding box of every item.
func (d *Document) Bounds() (geom.Rect, bool) {
	var box geom.Rect
	found := false
	for _, id := range d.order {
		r := d.items[id].Bounds()
		if !found {
			box, found = r, true
			continue
		}
		box = box.Union(r)
	}
	return box, found
}

// OutlineThickness returns the widest Edge-Cuts stroke, or zero when the
// document has no outline.
func (d *Document) OutlineThickness() geom.Length {
	var width geom.Length
	for _, id := range d.order {
		if s, ok := d.items[id].(OutlineSegment); ok && s.Width > width {
			width = s.Width
		}
	}
	return width
}

// AddNets merges net names into the document, keeping them sorted and unique.
func (d *Document) AddNets(nets ...string) {
	seen := make(map[string]bool, len(d.Nets)+len(nets))
	for _, n := range d.Nets {
		seen[n] = true
	}
	for _, n := range nets {
		if n != "" && !seen[n] {
			seen[n] = true
			d.Nets = append(d.Nets, n)
		}
	}
	sort.Strings(d.Nets)
}
