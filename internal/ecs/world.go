package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"isoworld/internal/gamemap"
	"isoworld/internal/geom"
)

// entity is the live record behind an EntityID.
type entity struct {
	pos   mgl64.Vec3
	cell  geom.Cell
	kinds kindMask
}

// bucket holds everything whose current cell equals its key.
type bucket struct {
	tile     gamemap.Tile
	hasTile  bool
	entities idSet
}

func (b *bucket) empty() bool { return !b.hasTile && b.entities.len() == 0 }

// World is the central entity registry and component store. It owns the
// grid-cell index and the component-kind index and keeps both consistent on
// every mutation. A World is not safe for concurrent use.
type World struct {
	nextID    EntityID
	entities  map[EntityID]*entity
	order     idSet
	stores    [MaxComponentTypes]map[EntityID]Component
	kinds     [MaxComponentTypes]idSet
	cells     map[geom.Cell]*bucket
	tileCount int
	// maxReach is the high-water mark of Extent.Reach over every component
	// ever attached. Tiles reach one cell below their own.
	maxReach  int
	listeners []subscription
	log       *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		nextID:   1,
		entities: make(map[EntityID]*entity),
		cells:    make(map[geom.Cell]*bucket),
		maxReach: 1,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create mints a new entity at pos holding comps. It fails only when the
// component set itself is invalid, in which case no ID is consumed.
func (w *World) Create(pos mgl64.Vec3, comps ...Component) (EntityID, error) {
	var seen kindMask
	for _, c := range comps {
		if err := checkComponent(c); err != nil {
			return NilEntity, err
		}
		if seen.has(c.Type()) {
			return NilEntity, eris.Wrapf(ErrDuplicateComponent, "kind %d", c.Type())
		}
		seen.set(c.Type())
	}

	id := w.nextID
	w.nextID++
	e := &entity{pos: pos, cell: geom.CellOf(pos)}
	w.entities[id] = e
	w.order.insert(id)
	w.bucketFor(e.cell).entities.insert(id)
	for _, c := range comps {
		w.attach(id, e, c)
	}

	w.log.Debug("entity created", zap.Uint64("entity", uint64(id)), zap.Stringer("cell", e.cell))
	w.emit(Event{Kind: EventEntityCreated, Entity: id, From: e.cell, To: e.cell})
	return id, nil
}

// Destroy removes the entity and all its components from both indexes.
// Destroying a dead or unknown ID is a no-op.
func (w *World) Destroy(id EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.kinds.each(func(t ComponentType) {
		delete(w.stores[t], id)
		w.kinds[t].remove(id)
	})
	w.unbucketEntity(id, e.cell)
	w.order.remove(id)
	delete(w.entities, id)

	w.log.Debug("entity destroyed", zap.Uint64("entity", uint64(id)))
	w.emit(Event{Kind: EventEntityDestroyed, Entity: id, From: e.cell, To: e.cell})
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.entities) }

// Move sets the entity's position. When the derived cell changes the grid
// index is updated before Move returns and EventCellChanged is delivered.
func (w *World) Move(id EntityID, pos mgl64.Vec3) error {
	e, ok := w.entities[id]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "move entity %d", id)
	}
	e.pos = pos
	next := geom.CellOf(pos)
	if next == e.cell {
		return nil
	}
	prev := e.cell
	w.unbucketEntity(id, prev)
	w.bucketFor(next).entities.insert(id)
	e.cell = next
	w.emit(Event{Kind: EventCellChanged, Entity: id, From: prev, To: next})
	return nil
}

// Position returns the entity's live position.
func (w *World) Position(id EntityID) (mgl64.Vec3, bool) {
	e, ok := w.entities[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return e.pos, true
}

// CellOf returns the cell the entity is indexed under.
func (w *World) CellOf(id EntityID) (geom.Cell, bool) {
	e, ok := w.entities[id]
	if !ok {
		return geom.Cell{}, false
	}
	return e.cell, true
}

// Add attaches a component to an entity, replacing any component of the
// same kind.
func (w *World) Add(id EntityID, c Component) error {
	if err := checkComponent(c); err != nil {
		return err
	}
	e, ok := w.entities[id]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "add kind %d to entity %d", c.Type(), id)
	}
	if w.attach(id, e, c) {
		w.emit(Event{Kind: EventComponentAdded, Entity: id, Component: c.Type(), From: e.cell, To: e.cell})
	}
	return nil
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	if t >= MaxComponentTypes {
		return nil
	}
	store := w.stores[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity. Missing components are a no-op.
func (w *World) Remove(id EntityID, t ComponentType) {
	e, ok := w.entities[id]
	if !ok || t >= MaxComponentTypes || !e.kinds.has(t) {
		return
	}
	delete(w.stores[t], id)
	w.kinds[t].remove(id)
	e.kinds.clear(t)
	w.emit(Event{Kind: EventComponentRemoved, Entity: id, Component: t, From: e.cell, To: e.cell})
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	e, ok := w.entities[id]
	return ok && t < MaxComponentTypes && e.kinds.has(t)
}

// Components returns the entity's components in ascending kind order.
func (w *World) Components(id EntityID) []Component {
	e, ok := w.entities[id]
	if !ok {
		return nil
	}
	var out []Component
	e.kinds.each(func(t ComponentType) {
		out = append(out, w.stores[t][id])
	})
	return out
}

// SetTile places t in cell c, replacing any tile already there.
func (w *World) SetTile(c geom.Cell, t gamemap.Tile) {
	b := w.bucketFor(c)
	if !b.hasTile {
		w.tileCount++
	}
	b.tile = t
	b.hasTile = true
	w.emit(Event{Kind: EventTileSet, From: c, To: c})
}

// RemoveTile clears the tile in cell c. It is a no-op for empty cells.
func (w *World) RemoveTile(c geom.Cell) {
	b, ok := w.cells[c]
	if !ok || !b.hasTile {
		return
	}
	b.tile = gamemap.Tile{}
	b.hasTile = false
	w.tileCount--
	if b.empty() {
		delete(w.cells, c)
	}
	w.emit(Event{Kind: EventTileRemoved, From: c, To: c})
}

// TileAt returns the tile in cell c.
func (w *World) TileAt(c geom.Cell) (gamemap.Tile, bool) {
	b, ok := w.cells[c]
	if !ok || !b.hasTile {
		return gamemap.Tile{}, false
	}
	return b.tile, true
}

// TileCount returns the number of placed tiles.
func (w *World) TileCount() int { return w.tileCount }

// MaxReach returns how many cells any stored occupant may extend past its
// index cell. Spatial queries widen their cell range by this much to see
// every box that can reach into it. It never shrinks.
func (w *World) MaxReach() int { return w.maxReach }

// View returns the read-only query façade over w.
func (w *World) View() View { return View{w: w} }

// attach stores c and reports whether the kind was newly attached.
func (w *World) attach(id EntityID, e *entity, c Component) bool {
	t := c.Type()
	if x, ok := c.(Extent); ok {
		w.maxReach = max(w.maxReach, x.Reach())
	}
	if w.stores[t] == nil {
		w.stores[t] = make(map[EntityID]Component)
	}
	w.stores[t][id] = c
	if e.kinds.has(t) {
		return false
	}
	e.kinds.set(t)
	w.kinds[t].insert(id)
	return true
}

func (w *World) bucketFor(c geom.Cell) *bucket {
	b, ok := w.cells[c]
	if !ok {
		b = &bucket{}
		w.cells[c] = b
	}
	return b
}

func (w *World) unbucketEntity(id EntityID, c geom.Cell) {
	b, ok := w.cells[c]
	if !ok || !b.entities.remove(id) {
		panic(eris.Wrapf(ErrIndexCorrupted, "entity %d missing from cell %v", id, c))
	}
	if b.empty() {
		delete(w.cells, c)
	}
}

func checkComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if c.Type() >= MaxComponentTypes {
		return eris.Wrapf(ErrUnknownComponent, "kind %d", c.Type())
	}
	if v, ok := c.(Validator); ok {
		if err := v.Validate(); err != nil {
			return eris.Wrapf(ErrInvalidComponent, "kind %d: %v", c.Type(), err)
		}
	}
	return nil
}
