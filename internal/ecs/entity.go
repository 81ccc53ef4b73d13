package ecs

import (
	"fmt"

	"isoworld/internal/geom"
)

// EntityID uniquely identifies an entity in the world. IDs are never reused
// within one World.
type EntityID uint64

// NilEntity is the zero value — no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
// The set of kinds is closed and declared by the component package.
type ComponentType uint8

// MaxComponentTypes bounds ComponentType so a kind set fits in one mask word.
const MaxComponentTypes = 64

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}

// Extent is implemented by components whose geometry can reach outside the
// entity's own cell. Reach is the number of cells it may extend past the
// anchor cell along any axis.
type Extent interface {
	Reach() int
}

// Validator is implemented by components that can be malformed. Add and
// Create refuse components whose Validate returns an error.
type Validator interface {
	Validate() error
}

// kindMask records which component kinds an entity holds.
type kindMask uint64

func (m kindMask) has(t ComponentType) bool { return m&(1<<t) != 0 }
func (m *kindMask) set(t ComponentType)     { *m |= 1 << t }
func (m *kindMask) clear(t ComponentType)   { *m &^= 1 << t }

// each calls fn for every kind in ascending order.
func (m kindMask) each(fn func(ComponentType)) {
	for t := ComponentType(0); t < MaxComponentTypes; t++ {
		if m.has(t) {
			fn(t)
		}
	}
}

// OccupantKind distinguishes the two things the grid index can hold.
type OccupantKind uint8

const (
	OccupantEntity OccupantKind = iota
	OccupantTile
)

// Occupant identifies an entity or a tile in the grid index. Tiles are
// identified by their cell.
type Occupant struct {
	Kind   OccupantKind
	Entity EntityID
	Cell   geom.Cell
}

// EntityOccupant returns the occupant handle for an entity in cell c.
func EntityOccupant(id EntityID, c geom.Cell) Occupant {
	return Occupant{Kind: OccupantEntity, Entity: id, Cell: c}
}

// TileOccupant returns the occupant handle for the tile in cell c.
func TileOccupant(c geom.Cell) Occupant {
	return Occupant{Kind: OccupantTile, Cell: c}
}

// IsTile reports whether the occupant is a tile.
func (o Occupant) IsTile() bool { return o.Kind == OccupantTile }

func (o Occupant) String() string {
	if o.IsTile() {
		return "tile" + o.Cell.String()
	}
	return fmt.Sprintf("entity#%d", o.Entity)
}
