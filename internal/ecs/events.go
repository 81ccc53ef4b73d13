package ecs

import (
	"slices"

	"github.com/google/uuid"

	"isoworld/internal/geom"
)

// EventKind identifies a World notification.
type EventKind uint8

const (
	EventEntityCreated EventKind = iota
	EventEntityDestroyed
	EventCellChanged
	EventComponentAdded
	EventComponentRemoved
	EventTileSet
	EventTileRemoved
)

var eventNames = [...]string{
	EventEntityCreated:    "entity-created",
	EventEntityDestroyed:  "entity-destroyed",
	EventCellChanged:      "cell-changed",
	EventComponentAdded:   "component-added",
	EventComponentRemoved: "component-removed",
	EventTileSet:          "tile-set",
	EventTileRemoved:      "tile-removed",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event describes one completed mutation. From and To carry the old and new
// cell for EventCellChanged; for other kinds both hold the cell concerned.
type Event struct {
	Kind      EventKind
	Entity    EntityID
	Component ComponentType
	From, To  geom.Cell
}

// Listener receives events synchronously, after the mutation is complete and
// before the mutating call returns.
type Listener func(Event)

type subscription struct {
	id string
	fn Listener
}

// Subscribe registers fn and returns its subscription ID. Listeners are
// called in subscription order.
func (w *World) Subscribe(fn Listener) string {
	id := uuid.NewString()
	w.listeners = append(w.listeners, subscription{id: id, fn: fn})
	return id
}

// Unsubscribe removes a listener. It reports whether id was registered.
func (w *World) Unsubscribe(id string) bool {
	i := slices.IndexFunc(w.listeners, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	w.listeners = slices.Delete(w.listeners, i, i+1)
	return true
}

func (w *World) emit(ev Event) {
	if len(w.listeners) == 0 {
		return
	}
	// A listener may subscribe or unsubscribe while we deliver.
	for _, s := range slices.Clone(w.listeners) {
		s.fn(ev)
	}
}
