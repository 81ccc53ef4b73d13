package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"
)

// ErrDegenerateBox is returned when a box has a non-positive dimension.
var ErrDegenerateBox = eris.New("box dimensions must be positive")

// Box is an axis-aligned box anchored at its minimum corner.
type Box struct {
	Min  mgl64.Vec3
	Size mgl64.Vec3
}

// NewBox validates size and returns the box anchored at anchor.
func NewBox(anchor, size mgl64.Vec3) (Box, error) {
	b := Box{Min: anchor, Size: size}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}
	return b, nil
}

// UnitBox returns the 1x1x1 box anchored at cell c.
func UnitBox(c Cell) Box {
	return Box{Min: c.Vec(), Size: mgl64.Vec3{1, 1, 1}}
}

// Validate reports ErrDegenerateBox when any dimension is not positive.
func (b Box) Validate() error {
	for i := 0; i < 3; i++ {
		if !(b.Size[i] > 0) || math.IsInf(b.Size[i], 0) {
			return eris.Wrapf(ErrDegenerateBox, "size %v", b.Size)
		}
	}
	return nil
}

// Max returns the corner opposite the anchor.
func (b Box) Max() mgl64.Vec3 {
	return b.Min.Add(b.Size)
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Size.Mul(0.5))
}

// Translate returns the box moved by d.
func (b Box) Translate(d mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(d), Size: b.Size}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	bMax, oMax := b.Max(), o.Max()
	var lo, hi mgl64.Vec3
	for i := 0; i < 3; i++ {
		lo[i] = math.Min(b.Min[i], o.Min[i])
		hi[i] = math.Max(bMax[i], oMax[i])
	}
	return Box{Min: lo, Size: hi.Sub(lo)}
}

// Swept returns the volume covering b before and after moving by d.
func (b Box) Swept(d mgl64.Vec3) Box {
	return b.Union(b.Translate(d))
}

// Overlap returns the signed overlap length on each axis. Positive values
// mean the projections on that axis intersect; zero means touching.
func (b Box) Overlap(o Box) mgl64.Vec3 {
	bMax, oMax := b.Max(), o.Max()
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = math.Min(bMax[i], oMax[i]) - math.Max(b.Min[i], o.Min[i])
	}
	return out
}

// Intersects reports whether the interiors of b and o overlap by more than
// eps on every axis. Touching faces do not intersect.
func (b Box) Intersects(o Box, eps float64) bool {
	ov := b.Overlap(o)
	return ov[0] > eps && ov[1] > eps && ov[2] > eps
}

// Cells returns the inclusive cell range covered by the box.
func (b Box) Cells() (min, max Cell) {
	hi := b.Max()
	min = CellOf(b.Min)
	max = Cell{
		X: int(math.Ceil(hi.X())) - 1,
		Y: int(math.Ceil(hi.Y())) - 1,
		Z: int(math.Ceil(hi.Z())) - 1,
	}
	if max.X < min.X {
		max.X = min.X
	}
	if max.Y < min.Y {
		max.Y = min.Y
	}
	if max.Z < min.Z {
		max.Z = min.Z
	}
	return min, max
}
