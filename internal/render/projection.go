package render

import (
	"github.com/gdamore/tcell/v2"

	"isoworld/internal/component"
	"isoworld/internal/ecs"
	"isoworld/internal/geom"
)

// Projection is one occupant's screen-space footprint for the current frame.
// Projections live in a Scratch and are only valid until it is reset.
type Projection struct {
	Source ecs.Occupant
	World  geom.Box
	Screen Rect
	Glyph  string
	Style  tcell.Style
	Layer  component.RenderLayer
	// Flat marks walkable ground tiles.
	Flat  bool
	Focus bool

	// Set by occlusion strategies. Alpha 1 is opaque.
	Alpha  float64
	Hidden bool

	index int
}

// Level returns the layer the projection's source is indexed on.
func (p *Projection) Level() int { return p.Source.Cell.Z }

// Faded reports whether a strategy lowered the projection's opacity.
func (p *Projection) Faded() bool { return p.Alpha < 1 }

// Project builds a projection for every tile and every entity with a
// Renderable that falls inside the camera's viewport, tiles first in layer
// order then entities in creation order. Entities without a Body are drawn as
// a unit box at their position. Projecting reuses sc's storage and
// invalidates projections returned by an earlier call.
func Project(v ecs.View, cam *IsoCamera, sc *Scratch) []*Projection {
	sc.projs = sc.projs[:0]
	sc.ptrs = sc.ptrs[:0]
	for c, t := range v.Tiles() {
		b := t.Box(c)
		r := cam.ScreenRect(b)
		if !cam.InView(r) {
			continue
		}
		sc.projs = append(sc.projs, Projection{
			Source: ecs.TileOccupant(c),
			World:  b,
			Screen: r,
			Glyph:  t.Glyph,
			Style:  tcell.StyleDefault.Background(ShadeFor(c.Z)),
			Flat:   t.IsFlat(),
			Alpha:  1,
		})
	}

	for id, comp := range v.EntitiesWithComponent(component.CRenderable) {
		rend := comp.(component.Renderable)
		pos, _ := v.Position(id)
		body := component.UnitBody()
		if bc := v.Get(id, component.CBody); bc != nil {
			body = bc.(component.Body)
		}
		b := body.Box(pos)
		r := cam.ScreenRect(b)
		if !cam.InView(r) {
			continue
		}
		cell, _ := v.Cell(id)
		sc.projs = append(sc.projs, Projection{
			Source: ecs.EntityOccupant(id, cell),
			World:  b,
			Screen: r,
			Glyph:  rend.Glyph,
			Style:  tcell.StyleDefault.Foreground(rend.FGColor).Background(rend.BGColor),
			Layer:  rend.Layer,
			Focus:  v.Has(id, component.CTagFocus),
			Alpha:  1,
		})
	}

	// Pointers are taken only once the backing array has stopped growing.
	for i := range sc.projs {
		sc.ptrs = append(sc.ptrs, &sc.projs[i])
	}
	return sc.ptrs
}
