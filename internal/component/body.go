package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"isoworld/internal/ecs"
	"isoworld/internal/geom"
)

const CBody ecs.ComponentType = 1

// Body gives an entity a collision/occlusion box. Offset is relative to the
// entity position and locates the box's minimum corner.
type Body struct {
	Offset mgl64.Vec3
	Size   mgl64.Vec3
}

func (Body) Type() ecs.ComponentType { return CBody }

// Validate rejects non-positive dimensions.
func (b Body) Validate() error {
	_, err := geom.NewBox(b.Offset, b.Size)
	return err
}

// Reach returns how many cells the box can extend past the cell holding
// the entity position, on the worst axis.
func (b Body) Reach() int {
	r := 0
	for i := 0; i < 3; i++ {
		r = max(r, int(math.Ceil(b.Offset[i]+b.Size[i])), int(math.Ceil(-b.Offset[i])))
	}
	return r
}

// Box returns the world-space box for an entity at pos.
func (b Body) Box(pos mgl64.Vec3) geom.Box {
	return geom.Box{Min: pos.Add(b.Offset), Size: b.Size}
}

// UnitBody returns a 1x1x1 body anchored at the entity position.
func UnitBody() Body {
	return Body{Size: mgl64.Vec3{1, 1, 1}}
}
