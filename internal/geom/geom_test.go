package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOfFloorsNegativeCoordinates(t *testing.T) {
	cases := []struct {
		p    mgl64.Vec3
		want Cell
	}{
		{mgl64.Vec3{0, 0, 0}, Cell{0, 0, 0}},
		{mgl64.Vec3{0.99, 1.5, 2}, Cell{0, 1, 2}},
		{mgl64.Vec3{-0.1, -1, -1.5}, Cell{-1, -1, -2}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CellOf(c.p), "CellOf(%v)", c.p)
	}
}

func TestNewBoxRejectsDegenerateSizes(t *testing.T) {
	for _, size := range []mgl64.Vec3{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		_, err := NewBox(mgl64.Vec3{}, size)
		require.Error(t, err, "size %v", size)
		assert.True(t, eris.Is(err, ErrDegenerateBox))
	}
	b, err := NewBox(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{2, 3, 5}, b.Max())
}

func TestIntersectsExcludesTouchingFaces(t *testing.T) {
	a := UnitBox(Cell{0, 0, 0})
	touching := UnitBox(Cell{1, 0, 0})
	overlapping := a.Translate(mgl64.Vec3{0.5, 0.5, 0.5})

	assert.False(t, a.Intersects(touching, 1e-9))
	assert.True(t, a.Intersects(overlapping, 1e-9))
	assert.Equal(t, mgl64.Vec3{0, 1, 1}, a.Overlap(touching))
}

func TestSweptCoversStartAndEnd(t *testing.T) {
	b := UnitBox(Cell{0, 0, 0})
	s := b.Swept(mgl64.Vec3{2, 0, -3})
	assert.Equal(t, mgl64.Vec3{0, 0, -3}, s.Min)
	assert.Equal(t, mgl64.Vec3{3, 1, 1}, s.Max())
}

func TestBoxCells(t *testing.T) {
	b := Box{Min: mgl64.Vec3{0.5, 0, -1}, Size: mgl64.Vec3{1, 1, 1}}
	lo, hi := b.Cells()
	assert.Equal(t, Cell{0, 0, -1}, lo)
	assert.Equal(t, Cell{1, 0, -1}, hi)

	var visited []Cell
	EachCell(lo, hi, func(c Cell) bool {
		visited = append(visited, c)
		return true
	})
	assert.Equal(t, []Cell{{0, 0, -1}, {1, 0, -1}}, visited)
}

func TestCellLessOrdersByLayerFirst(t *testing.T) {
	assert.True(t, Cell{5, 5, 0}.Less(Cell{0, 0, 1}))
	assert.True(t, Cell{5, 0, 1}.Less(Cell{0, 1, 1}))
	assert.False(t, Cell{1, 1, 1}.Less(Cell{1, 1, 1}))
}
