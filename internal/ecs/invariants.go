package ecs

import (
	"github.com/rotisserie/eris"

	"isoworld/internal/geom"
)

// CheckInvariants audits both derived indexes against the entity records.
// It returns an ErrIndexCorrupted-wrapped error describing the first
// violation found.
func (w *World) CheckInvariants() error {
	if w.order.len() != len(w.entities) {
		return eris.Wrapf(ErrIndexCorrupted, "order has %d ids, %d entities", w.order.len(), len(w.entities))
	}

	indexed := 0
	tiles := 0
	for c, b := range w.cells {
		if b.empty() {
			return eris.Wrapf(ErrIndexCorrupted, "empty bucket kept for cell %v", c)
		}
		if b.hasTile {
			tiles++
		}
		for _, id := range b.entities.ids {
			e, ok := w.entities[id]
			if !ok {
				return eris.Wrapf(ErrIndexCorrupted, "dead entity %d in cell %v", id, c)
			}
			if e.cell != c {
				return eris.Wrapf(ErrIndexCorrupted, "entity %d bucketed in %v, recorded in %v", id, c, e.cell)
			}
			indexed++
		}
	}
	if indexed != len(w.entities) {
		return eris.Wrapf(ErrIndexCorrupted, "%d entities bucketed, %d alive", indexed, len(w.entities))
	}
	if tiles != w.tileCount {
		return eris.Wrapf(ErrIndexCorrupted, "%d tiles bucketed, count says %d", tiles, w.tileCount)
	}

	for id, e := range w.entities {
		if want := geom.CellOf(e.pos); e.cell != want {
			return eris.Wrapf(ErrIndexCorrupted, "entity %d at %v recorded in %v", id, e.pos, e.cell)
		}
		if !w.order.has(id) {
			return eris.Wrapf(ErrIndexCorrupted, "entity %d missing from order", id)
		}
	}

	for t := ComponentType(0); t < MaxComponentTypes; t++ {
		if w.kinds[t].len() != len(w.stores[t]) {
			return eris.Wrapf(ErrIndexCorrupted, "kind %d: %d indexed, %d stored", t, w.kinds[t].len(), len(w.stores[t]))
		}
		for _, id := range w.kinds[t].ids {
			e, ok := w.entities[id]
			if !ok || !e.kinds.has(t) {
				return eris.Wrapf(ErrIndexCorrupted, "kind %d indexes entity %d that does not hold it", t, id)
			}
			if _, ok := w.stores[t][id]; !ok {
				return eris.Wrapf(ErrIndexCorrupted, "kind %d indexes entity %d with no stored value", t, id)
			}
		}
	}
	return nil
}
