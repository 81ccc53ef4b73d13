package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis names one of the three world axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y, Z int
}

// CellOf quantizes a world position to the cell containing it.
func CellOf(p mgl64.Vec3) Cell {
	return Cell{
		X: int(math.Floor(p.X())),
		Y: int(math.Floor(p.Y())),
		Z: int(math.Floor(p.Z())),
	}
}

// Add returns c offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Vec returns the world position of the cell's minimum corner.
func (c Cell) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Less orders cells by z, then y, then x.
func (c Cell) Less(o Cell) bool {
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// EachCell calls fn for every cell in the inclusive range [min, max],
// iterating z, then y, then x. Iteration stops when fn returns false.
func EachCell(min, max Cell, fn func(Cell) bool) {
	for z := min.Z; z <= max.Z; z++ {
		for y := min.Y; y <= max.Y; y++ {
			for x := min.X; x <= max.X; x++ {
				if !fn(Cell{X: x, Y: y, Z: z}) {
					return
				}
			}
		}
	}
}
