package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"

	"isoworld/internal/ecs"
)

// SnapshotVersion is the layout version written into every Record.
const SnapshotVersion = 1

var (
	ErrUnsupportedVersion = eris.New("unsupported snapshot version")
	ErrKindMismatch       = eris.New("snapshot entry kind does not match its payload")
)

// Entry is one named component of a Record.
type Entry struct {
	Kind    string
	Payload ecs.Component
}

// Record is the versioned component set of one entity, the shape handed to
// prefab serializers. Payloads are the stored values, unmodified.
type Record struct {
	Version    int
	Position   mgl64.Vec3
	Components []Entry
}

// Snapshot captures entity id.
func Snapshot(v ecs.View, id ecs.EntityID) (Record, error) {
	pos, ok := v.Position(id)
	if !ok {
		return Record{}, eris.Wrapf(ecs.ErrEntityNotFound, "snapshot entity %d", id)
	}
	rec := Record{Version: SnapshotVersion, Position: pos}
	for _, c := range v.Components(id) {
		name := KindName(c.Type())
		if name == "" {
			return Record{}, eris.Wrapf(ecs.ErrUnknownComponent, "kind %d has no name", c.Type())
		}
		rec.Components = append(rec.Components, Entry{Kind: name, Payload: c})
	}
	return rec, nil
}

// Restore creates a new entity from rec.
func Restore(w *ecs.World, rec Record) (ecs.EntityID, error) {
	if rec.Version != SnapshotVersion {
		return ecs.NilEntity, eris.Wrapf(ErrUnsupportedVersion, "version %d", rec.Version)
	}
	comps := make([]ecs.Component, 0, len(rec.Components))
	for _, e := range rec.Components {
		t, ok := KindByName(e.Kind)
		if !ok {
			return ecs.NilEntity, eris.Wrapf(ecs.ErrUnknownComponent, "kind %q", e.Kind)
		}
		if e.Payload == nil || e.Payload.Type() != t {
			return ecs.NilEntity, eris.Wrapf(ErrKindMismatch, "entry %q", e.Kind)
		}
		comps = append(comps, e.Payload)
	}
	return w.Create(rec.Position, comps...)
}
