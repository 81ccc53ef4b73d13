package ecs

import (
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"

	"isoworld/internal/gamemap"
	"isoworld/internal/geom"
)

// View is the read-only query façade over a World. It is a small value and
// may be passed around freely; it always reflects the World's live state.
type View struct {
	w *World
}

// Alive reports whether the entity is alive.
func (v View) Alive(id EntityID) bool { return v.w.Alive(id) }

// Len returns the number of live entities.
func (v View) Len() int { return v.w.Len() }

// Position returns the entity's live position.
func (v View) Position(id EntityID) (mgl64.Vec3, bool) { return v.w.Position(id) }

// Cell returns the cell the entity is indexed under.
func (v View) Cell(id EntityID) (geom.Cell, bool) { return v.w.CellOf(id) }

// Get returns the component of kind t held by id, or nil.
func (v View) Get(id EntityID, t ComponentType) Component { return v.w.Get(id, t) }

// Has reports whether id holds a component of kind t.
func (v View) Has(id EntityID, t ComponentType) bool { return v.w.Has(id, t) }

// Components returns the entity's components in ascending kind order.
func (v View) Components(id EntityID) []Component { return v.w.Components(id) }

// MaxReach returns how far any occupant may extend past its index cell.
func (v View) MaxReach() int { return v.w.MaxReach() }

// TileAt returns the tile in cell c.
func (v View) TileAt(c geom.Cell) (gamemap.Tile, bool) { return v.w.TileAt(c) }

// Entities returns every live entity in creation order.
func (v View) Entities() []EntityID { return v.w.order.items() }

// EntitiesAt returns the entities whose current cell is c. The result is
// never nil.
func (v View) EntitiesAt(c geom.Cell) []EntityID {
	b, ok := v.w.cells[c]
	if !ok {
		return []EntityID{}
	}
	return b.entities.items()
}

// EntitiesWithComponent iterates (id, component) for every holder of kind t
// in creation order. An indexed entity without the component panics with
// ErrIndexCorrupted.
func (v View) EntitiesWithComponent(t ComponentType) iter.Seq2[EntityID, Component] {
	return func(yield func(EntityID, Component) bool) {
		if t >= MaxComponentTypes {
			return
		}
		for _, id := range v.w.kinds[t].items() {
			c, ok := v.w.stores[t][id]
			if !ok {
				panic(eris.Wrapf(ErrIndexCorrupted, "entity %d indexed under kind %d without the component", id, t))
			}
			if !yield(id, c) {
				return
			}
		}
	}
}

// Find returns the first holder of kind t in creation order.
func (v View) Find(t ComponentType) (EntityID, Component, bool) {
	for id, c := range v.EntitiesWithComponent(t) {
		return id, c, true
	}
	return NilEntity, nil, false
}

// Count returns the number of entities holding kind t.
func (v View) Count(t ComponentType) int {
	if t >= MaxComponentTypes {
		return 0
	}
	return v.w.kinds[t].len()
}

// All returns all alive entities that have every listed component type.
func (v View) All(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	for _, t := range types {
		if t >= MaxComponentTypes {
			return nil
		}
	}
	// Use the smallest index as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if v.w.kinds[t].len() < v.w.kinds[smallest].len() {
			smallest = t
		}
	}
	var result []EntityID
	for _, id := range v.w.kinds[smallest].ids {
		match := true
		for _, t := range types {
			if !v.w.entities[id].kinds.has(t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

// OccupantsIn returns the tiles and entities indexed in the inclusive cell
// range [min, max]. Cells are visited z, then y, then x; within a cell the
// tile comes first, then entities in creation order.
func (v View) OccupantsIn(min, max geom.Cell) []Occupant {
	var out []Occupant
	visit := func(c geom.Cell) bool {
		b, ok := v.w.cells[c]
		if !ok {
			return true
		}
		if b.hasTile {
			out = append(out, TileOccupant(c))
		}
		for _, id := range b.entities.ids {
			out = append(out, EntityOccupant(id, c))
		}
		return true
	}

	volume := (max.X - min.X + 1) * (max.Y - min.Y + 1) * (max.Z - min.Z + 1)
	if volume <= 0 {
		return nil
	}
	if volume <= len(v.w.cells) {
		geom.EachCell(min, max, visit)
		return out
	}
	// Sparse world, wide range: walk the occupied cells instead.
	var hit []geom.Cell
	for c := range v.w.cells {
		if c.X >= min.X && c.X <= max.X && c.Y >= min.Y && c.Y <= max.Y && c.Z >= min.Z && c.Z <= max.Z {
			hit = append(hit, c)
		}
	}
	slices.SortFunc(hit, compareCells)
	for _, c := range hit {
		visit(c)
	}
	return out
}

// Tiles iterates every tile ordered by layer, then row, then column.
func (v View) Tiles() iter.Seq2[geom.Cell, gamemap.Tile] {
	return func(yield func(geom.Cell, gamemap.Tile) bool) {
		cells := make([]geom.Cell, 0, v.w.tileCount)
		for c, b := range v.w.cells {
			if b.hasTile {
				cells = append(cells, c)
			}
		}
		slices.SortFunc(cells, compareCells)
		for _, c := range cells {
			if !yield(c, v.w.cells[c].tile) {
				return
			}
		}
	}
}

// TileCount returns the number of placed tiles.
func (v View) TileCount() int { return v.w.tileCount }

func compareCells(a, b geom.Cell) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
