package ecs

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"

	"isoworld/internal/gamemap"
	"isoworld/internal/geom"
)

// stub components used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

type checkedComp struct{ ok bool }

func (checkedComp) Type() ComponentType { return 3 }

func (c checkedComp) Validate() error {
	if !c.ok {
		return errors.New("not ok")
	}
	return nil
}

type wideComp struct{ reach int }

func (wideComp) Type() ComponentType { return 4 }
func (c wideComp) Reach() int        { return c.reach }

type outOfRangeComp struct{}

func (outOfRangeComp) Type() ComponentType { return MaxComponentTypes }

func mustCreate(t *testing.T, w *World, pos mgl64.Vec3, comps ...Component) EntityID {
	t.Helper()
	id, err := w.Create(pos, comps...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func mustHold(t *testing.T, w *World) {
	t.Helper()
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{1.5, 2.25, 0})
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
	if c, _ := w.CellOf(id); c != (geom.Cell{X: 1, Y: 2, Z: 0}) {
		t.Fatalf("cell = %v; want (1,2,0)", c)
	}
	mustHold(t, w)
}

func TestCreateRejectsInvalidSets(t *testing.T) {
	cases := []struct {
		name  string
		comps []Component
		want  error
	}{
		{"duplicate kind", []Component{testComp{1}, testComp{2}}, ErrDuplicateComponent},
		{"failed validation", []Component{checkedComp{ok: false}}, ErrInvalidComponent},
		{"kind out of range", []Component{outOfRangeComp{}}, ErrUnknownComponent},
		{"nil component", []Component{nil}, ErrNilComponent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			id, err := w.Create(mgl64.Vec3{}, tc.comps...)
			if !eris.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
			if id != NilEntity || w.Len() != 0 {
				t.Fatal("failed Create must not leave an entity behind")
			}
			mustHold(t, w)
		})
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{})
	if err := w.Add(id, testComp{val: 42}); err != nil {
		t.Fatal(err)
	}

	c := w.Get(id, ComponentType(1))
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	tc, ok := c.(testComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
}

func TestAddToDeadEntityFails(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{})
	w.Destroy(id)
	if err := w.Add(id, testComp{}); !eris.Is(err, ErrEntityNotFound) {
		t.Fatalf("err = %v; want ErrEntityNotFound", err)
	}
}

func TestDestroyEntityRemovesComponents(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{3, 3, 0}, testComp{val: 7})
	w.Destroy(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after Destroy")
	}
	if w.Get(id, ComponentType(1)) != nil {
		t.Fatal("component should be gone after Destroy")
	}
	if got := w.View().EntitiesAt(geom.Cell{X: 3, Y: 3}); len(got) != 0 {
		t.Fatalf("cell still lists %v", got)
	}
	mustHold(t, w)
}

func TestDestroyIsIdempotent(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{}, testComp{})
	w.Destroy(id)
	w.Destroy(id)
	w.Destroy(EntityID(999))
	mustHold(t, w)
}

func TestMoveUpdatesCellIndex(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{0.5, 0.5, 0})
	v := w.View()

	if err := w.Move(id, mgl64.Vec3{0.9, 0.1, 0}); err != nil {
		t.Fatal(err)
	}
	if got := v.EntitiesAt(geom.Cell{}); len(got) != 1 || got[0] != id {
		t.Fatalf("same-cell move lost the entity: %v", got)
	}

	if err := w.Move(id, mgl64.Vec3{-0.5, 2, 1}); err != nil {
		t.Fatal(err)
	}
	if got := v.EntitiesAt(geom.Cell{}); len(got) != 0 {
		t.Fatalf("old cell still lists %v", got)
	}
	if got := v.EntitiesAt(geom.Cell{X: -1, Y: 2, Z: 1}); len(got) != 1 || got[0] != id {
		t.Fatalf("new cell = %v; want [%d]", got, id)
	}
	mustHold(t, w)
}

func TestMoveDeadEntityFails(t *testing.T) {
	w := NewWorld()
	if err := w.Move(EntityID(5), mgl64.Vec3{}); !eris.Is(err, ErrEntityNotFound) {
		t.Fatalf("err = %v; want ErrEntityNotFound", err)
	}
}

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{}, testComp{val: 5})

	w.Remove(id, ComponentType(1))

	if w.Get(id, ComponentType(1)) != nil {
		t.Fatal("component should be nil after Remove")
	}
	if w.View().Count(ComponentType(1)) != 0 {
		t.Fatal("kind index should be empty after Remove")
	}
	mustHold(t, w)
}

func TestRemoveNonexistentIsNoop(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{})
	// Removing a component type that was never added must not panic.
	w.Remove(id, ComponentType(40))
	w.Remove(id, ComponentType(200))
	mustHold(t, w)
}

func TestHasComponent(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{})

	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false before Add")
	}
	_ = w.Add(id, testComp{val: 1})
	if !w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return true after Add")
	}
	w.Remove(id, ComponentType(1))
	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false after Remove")
	}
}

func TestTilesShareTheGrid(t *testing.T) {
	w := NewWorld()
	c := geom.Cell{X: 1, Y: 1, Z: 0}
	w.SetTile(c, gamemap.MakeFloor())
	w.SetTile(c, gamemap.MakeWall())
	id := mustCreate(t, w, mgl64.Vec3{1.5, 1.5, 0})

	tile, ok := w.TileAt(c)
	if !ok || tile.Kind != gamemap.TileWall {
		t.Fatalf("TileAt = %+v, %v; replacing should overwrite", tile, ok)
	}
	if w.TileCount() != 1 {
		t.Fatalf("TileCount = %d; want 1", w.TileCount())
	}
	occ := w.View().OccupantsIn(c, c)
	if len(occ) != 2 || !occ[0].IsTile() || occ[1].Entity != id {
		t.Fatalf("occupants = %v", occ)
	}

	w.RemoveTile(c)
	w.RemoveTile(c)
	if _, ok := w.TileAt(c); ok {
		t.Fatal("tile should be gone")
	}
	mustHold(t, w)
}

func TestListenersSeeCompletedMutations(t *testing.T) {
	w := NewWorld()
	var got []Event
	sub := w.Subscribe(func(ev Event) {
		// The index must already reflect the change.
		if ev.Kind == EventCellChanged {
			ids := w.View().EntitiesAt(ev.To)
			if len(ids) != 1 || ids[0] != ev.Entity {
				t.Errorf("cell %v not updated before notification: %v", ev.To, ids)
			}
		}
		got = append(got, ev)
	})

	id := mustCreate(t, w, mgl64.Vec3{})
	_ = w.Move(id, mgl64.Vec3{0.5, 0, 0})
	_ = w.Move(id, mgl64.Vec3{2, 0, 0})
	_ = w.Add(id, testComp{})
	w.Remove(id, ComponentType(1))
	w.Destroy(id)

	want := []EventKind{EventEntityCreated, EventCellChanged, EventComponentAdded, EventComponentRemoved, EventEntityDestroyed}
	if len(got) != len(want) {
		t.Fatalf("events = %v; want kinds %v", got, want)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("event %d = %v; want %v", i, got[i].Kind, k)
		}
	}
	if got[1].From != (geom.Cell{}) || got[1].To != (geom.Cell{X: 2}) {
		t.Errorf("cell change = %v -> %v", got[1].From, got[1].To)
	}

	if !w.Unsubscribe(sub) {
		t.Fatal("Unsubscribe should find the listener")
	}
	mustCreate(t, w, mgl64.Vec3{})
	if len(got) != len(want) {
		t.Fatal("unsubscribed listener was called")
	}
}

// TestRandomOperationsKeepIndexesConsistent drives a random mix of create,
// move, add, remove and destroy and audits the indexes after every step.
func TestRandomOperationsKeepIndexesConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := NewWorld()
	var live []EntityID

	randPos := func() mgl64.Vec3 {
		return mgl64.Vec3{rng.Float64()*8 - 4, rng.Float64()*8 - 4, rng.Float64()*4 - 2}
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(5); {
		case op == 0 || len(live) == 0:
			live = append(live, mustCreate(t, w, randPos(), testComp{val: step}))
		case op == 1:
			id := live[rng.Intn(len(live))]
			if err := w.Move(id, randPos()); err != nil {
				t.Fatal(err)
			}
		case op == 2:
			_ = w.Add(live[rng.Intn(len(live))], otherComp{})
		case op == 3:
			w.Remove(live[rng.Intn(len(live))], ComponentType(rng.Intn(3)))
		default:
			i := rng.Intn(len(live))
			w.Destroy(live[i])
			live = append(live[:i], live[i+1:]...)
		}
		if err := w.CheckInvariants(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}

	v := w.View()
	for _, id := range live {
		pos, _ := v.Position(id)
		cell, _ := v.Cell(id)
		if cell != geom.CellOf(pos) {
			t.Fatalf("entity %d cell %v != floor(%v)", id, cell, pos)
		}
		for _, k := range []ComponentType{1, 2} {
			indexed := false
			for got := range v.EntitiesWithComponent(k) {
				if got == id {
					indexed = true
				}
			}
			if indexed != w.Has(id, k) {
				t.Fatalf("entity %d kind %d: indexed=%v has=%v", id, k, indexed, w.Has(id, k))
			}
		}
	}
}

func TestMaxReachIsAHighWaterMark(t *testing.T) {
	w := NewWorld()
	if got := w.MaxReach(); got != 1 {
		t.Fatalf("initial reach = %d; want 1", got)
	}
	id := mustCreate(t, w, mgl64.Vec3{}, wideComp{reach: 3})
	if got := w.MaxReach(); got != 3 {
		t.Fatalf("reach after create = %d; want 3", got)
	}
	if err := w.Add(id, wideComp{reach: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	w.Destroy(id)
	if got := w.View().MaxReach(); got != 3 {
		t.Fatalf("reach after destroy = %d; want 3", got)
	}
}
