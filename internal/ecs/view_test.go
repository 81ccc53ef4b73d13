package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoworld/internal/gamemap"
	"isoworld/internal/geom"
)

func TestEntitiesAtNeverNil(t *testing.T) {
	v := NewWorld().View()
	got := v.EntitiesAt(geom.Cell{X: 9, Y: 9, Z: 9})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEntitiesWithComponentInCreationOrder(t *testing.T) {
	w := NewWorld()
	a := mustCreate(t, w, mgl64.Vec3{}, testComp{val: 1})
	b := mustCreate(t, w, mgl64.Vec3{}, otherComp{})
	c := mustCreate(t, w, mgl64.Vec3{})
	require.NoError(t, w.Add(c, testComp{val: 3}))
	require.NoError(t, w.Add(b, testComp{val: 2}))

	var ids []EntityID
	var vals []int
	for id, comp := range w.View().EntitiesWithComponent(1) {
		ids = append(ids, id)
		vals = append(vals, comp.(testComp).val)
	}
	assert.Equal(t, []EntityID{a, b, c}, ids)
	assert.Equal(t, []int{1, 2, 3}, vals)
}

func TestFindIsDeterministic(t *testing.T) {
	w := NewWorld()
	_, _, ok := w.View().Find(1)
	assert.False(t, ok, "Find on an empty kind")

	first := mustCreate(t, w, mgl64.Vec3{}, testComp{val: 1})
	mustCreate(t, w, mgl64.Vec3{}, testComp{val: 2})
	for i := 0; i < 10; i++ {
		id, comp, ok := w.View().Find(1)
		require.True(t, ok)
		assert.Equal(t, first, id)
		assert.Equal(t, testComp{val: 1}, comp)
	}
}

func TestEntitiesWithComponentPanicsOnCorruption(t *testing.T) {
	w := NewWorld()
	id := mustCreate(t, w, mgl64.Vec3{}, testComp{})
	// Break the invariant behind the World's back.
	delete(w.stores[1], id)

	require.Error(t, w.CheckInvariants())
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, eris.Is(err, ErrIndexCorrupted))
	}()
	for range w.View().EntitiesWithComponent(1) {
	}
}

func TestAllFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	// entity with both A and B
	both := mustCreate(t, w, mgl64.Vec3{}, testComp{}, otherComp{})
	// entity with only A
	mustCreate(t, w, mgl64.Vec3{}, testComp{})

	results := w.View().All(ComponentType(1), ComponentType(2))
	require.Len(t, results, 1)
	assert.Equal(t, both, results[0])
}

func TestOccupantsInDenseAndSparseAgree(t *testing.T) {
	w := NewWorld()
	w.SetTile(geom.Cell{X: 0, Y: 0, Z: 0}, gamemap.MakeFloor())
	w.SetTile(geom.Cell{X: 1, Y: 0, Z: 0}, gamemap.MakeFloor())
	e := mustCreate(t, w, mgl64.Vec3{1.2, 0.4, 0})
	far := mustCreate(t, w, mgl64.Vec3{50, 50, 5})

	small := w.View().OccupantsIn(geom.Cell{}, geom.Cell{X: 1})
	assert.Equal(t, []Occupant{
		TileOccupant(geom.Cell{}),
		TileOccupant(geom.Cell{X: 1}),
		EntityOccupant(e, geom.Cell{X: 1}),
	}, small)

	// A huge range takes the sparse path and must agree on order.
	wide := w.View().OccupantsIn(geom.Cell{X: -100, Y: -100, Z: -10}, geom.Cell{X: 100, Y: 100, Z: 10})
	assert.Equal(t, append(small, EntityOccupant(far, geom.Cell{X: 50, Y: 50, Z: 5})), wide)
}

func TestTilesIterateInLayerOrder(t *testing.T) {
	w := NewWorld()
	w.SetTile(geom.Cell{X: 0, Y: 0, Z: 1}, gamemap.MakeWall())
	w.SetTile(geom.Cell{X: 3, Y: 0, Z: 0}, gamemap.MakeFloor())
	w.SetTile(geom.Cell{X: 0, Y: 1, Z: 0}, gamemap.MakeFloor())

	var cells []geom.Cell
	for c := range w.View().Tiles() {
		cells = append(cells, c)
	}
	assert.Equal(t, []geom.Cell{{X: 3}, {Y: 1}, {Z: 1}}, cells)
}

// Destroying and recreating with the same payload leaves the indexes in the
// same shape as a single create.
func TestDestroyRecreateRoundTrip(t *testing.T) {
	single := NewWorld()
	mustCreate(t, single, mgl64.Vec3{2.5, 1, 0}, testComp{val: 9}, otherComp{})

	twice := NewWorld()
	old := mustCreate(t, twice, mgl64.Vec3{2.5, 1, 0}, testComp{val: 9}, otherComp{})
	twice.Destroy(old)
	fresh := mustCreate(t, twice, mgl64.Vec3{2.5, 1, 0}, testComp{val: 9}, otherComp{})
	assert.NotEqual(t, old, fresh)

	shape := func(w *World) (cells map[geom.Cell]int, kinds map[ComponentType]int, payloads []Component) {
		cells = map[geom.Cell]int{}
		kinds = map[ComponentType]int{}
		v := w.View()
		for _, id := range v.Entities() {
			c, _ := v.Cell(id)
			cells[c]++
			payloads = append(payloads, w.Components(id)...)
		}
		for _, k := range []ComponentType{1, 2} {
			kinds[k] = v.Count(k)
		}
		return cells, kinds, payloads
	}
	c1, k1, p1 := shape(single)
	c2, k2, p2 := shape(twice)
	assert.Equal(t, c1, c2)
	assert.Equal(t, k1, k2)
	assert.Equal(t, p1, p2)
	require.NoError(t, twice.CheckInvariants())
}
