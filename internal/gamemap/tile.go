package gamemap

import (
	"github.com/go-gl/mathgl/mgl64"

	"isoworld/assets"
	"isoworld/internal/geom"
)

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
	TileStairsUp
	TileStairsDown
	TileGrass
	TileWater
)

var tileNames = [...]string{
	TileWall:       "wall",
	TileFloor:      "floor",
	TileDoor:       "door",
	TileStairsUp:   "stairs-up",
	TileStairsDown: "stairs-down",
	TileGrass:      "grass",
	TileWater:      "water",
}

func (k TileKind) String() string {
	if int(k) < len(tileNames) {
		return tileNames[k]
	}
	return "unknown"
}

// Tile is a static occupant of one grid cell. A tile in cell c is the slab
// whose top face is the walking surface of layer c.Z, so it spans
// [c.Z-Height, c.Z] vertically.
type Tile struct {
	Kind   TileKind
	Solid  bool
	Glyph  string
	Height float64 // zero means a full 1.0 slab
}

// Box returns the tile's collision/occlusion box when placed in cell c.
func (t Tile) Box(c geom.Cell) geom.Box {
	h := t.Height
	if h <= 0 || h > 1 {
		h = 1
	}
	return geom.Box{
		Min:  mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z) - h},
		Size: mgl64.Vec3{1, 1, h},
	}
}

// IsFlat reports whether the tile is walkable ground rather than a block.
func (t Tile) IsFlat() bool {
	switch t.Kind {
	case TileFloor, TileGrass, TileWater:
		return true
	}
	return false
}

// MakeWall returns a solid wall block.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Solid: true, Glyph: assets.GlyphWall}
}

// MakeFloor returns a solid floor slab.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Solid: true, Glyph: assets.GlyphFloor}
}

// MakeDoor returns a door block. Doors report contacts but never block.
func MakeDoor() Tile {
	return Tile{Kind: TileDoor, Solid: false, Glyph: assets.GlyphDoor}
}

// MakeStairsDown returns a half-height stair step.
func MakeStairsDown() Tile {
	return Tile{Kind: TileStairsDown, Solid: true, Glyph: assets.GlyphStairsDown, Height: 0.5}
}

// MakeStairsUp returns a half-height stair step.
func MakeStairsUp() Tile {
	return Tile{Kind: TileStairsUp, Solid: true, Glyph: assets.GlyphStairsUp, Height: 0.5}
}

// MakeGrass returns a solid grass slab.
func MakeGrass() Tile {
	return Tile{Kind: TileGrass, Solid: true, Glyph: assets.GlyphGrass}
}

// MakeWater returns a water surface. Water does not hold anything up.
func MakeWater() Tile {
	return Tile{Kind: TileWater, Solid: false, Glyph: assets.GlyphWater}
}
