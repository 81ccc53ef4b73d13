package component

import "isoworld/internal/ecs"

const CLabel ecs.ComponentType = 11

// Label is free text shown by viewers. The world never reads it.
type Label struct {
	Text string
}

func (Label) Type() ecs.ComponentType { return CLabel }
