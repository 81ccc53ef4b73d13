package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"isoworld/internal/ecs"
)

const CVelocity ecs.ComponentType = 3

// Velocity is integrated each frame by the movement system. Gravity opts
// the entity into the configured downward acceleration.
type Velocity struct {
	V       mgl64.Vec3
	Gravity bool
}

func (Velocity) Type() ecs.ComponentType { return CVelocity }
