package factory

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"isoworld/assets"
	"isoworld/internal/component"
	"isoworld/internal/ecs"
)

// NewPlayer creates the player entity standing at pos. The body is slimmer
// than a tile so the player fits through one-wide corridors.
func NewPlayer(w *ecs.World, pos mgl64.Vec3, name string) (ecs.EntityID, error) {
	return w.Create(pos,
		component.Body{Offset: mgl64.Vec3{0.1, 0.1, 0}, Size: mgl64.Vec3{0.8, 0.8, 1}},
		component.Velocity{Gravity: true},
		component.Renderable{
			Glyph:   assets.GlyphPlayer,
			FGColor: tcell.ColorYellow,
			BGColor: tcell.ColorDefault,
		},
		component.Label{Text: name},
		component.TagSolid{},
		component.TagPlayer{},
		component.TagFocus{},
	)
}

// NewCrate creates a pushable-looking crate that falls under gravity.
func NewCrate(w *ecs.World, pos mgl64.Vec3) (ecs.EntityID, error) {
	return w.Create(pos,
		component.UnitBody(),
		component.Velocity{Gravity: true},
		component.Renderable{
			Glyph:   assets.GlyphCrate,
			FGColor: tcell.ColorOrange,
			BGColor: tcell.ColorDefault,
		},
		component.TagSolid{},
	)
}

// NewPillar creates a two-layer-tall solid column.
func NewPillar(w *ecs.World, pos mgl64.Vec3) (ecs.EntityID, error) {
	return w.Create(pos,
		component.Body{Size: mgl64.Vec3{1, 1, 2}},
		component.Renderable{
			Glyph:   assets.GlyphPillar,
			FGColor: tcell.ColorGray,
			BGColor: tcell.ColorDefault,
		},
		component.TagSolid{},
	)
}

// NewTrigger creates a thin non-solid pad. Movers report a contact with it
// but walk straight through.
func NewTrigger(w *ecs.World, pos mgl64.Vec3, label string) (ecs.EntityID, error) {
	return w.Create(pos,
		component.Body{Size: mgl64.Vec3{1, 1, 0.25}},
		component.Renderable{
			Glyph:   assets.GlyphTrigger,
			FGColor: tcell.ColorAqua,
			BGColor: tcell.ColorDefault,
		},
		component.Label{Text: label},
		component.TagTrigger{},
	)
}

// NewBeacon creates an overlay marker above pos. It has no body, so it
// never collides.
func NewBeacon(w *ecs.World, pos mgl64.Vec3) (ecs.EntityID, error) {
	return w.Create(pos,
		component.Renderable{
			Glyph:   assets.GlyphBeacon,
			FGColor: tcell.ColorRed,
			BGColor: tcell.ColorDefault,
			Layer:   component.LayerOverlay,
		},
	)
}
