package component

import "isoworld/internal/ecs"

const (
	CTagSolid   ecs.ComponentType = 2
	CTagPlayer  ecs.ComponentType = 8
	CTagFocus   ecs.ComponentType = 9
	CTagTrigger ecs.ComponentType = 10
)

// TagSolid marks an entity that blocks movement. Entities without it are
// ghosts: they still report contacts.
type TagSolid struct{}

func (TagSolid) Type() ecs.ComponentType { return CTagSolid }

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagFocus marks the entity occluders are faded around.
type TagFocus struct{}

func (TagFocus) Type() ecs.ComponentType { return CTagFocus }

// TagTrigger marks a trigger volume (pressure plates, doorways).
type TagTrigger struct{}

func (TagTrigger) Type() ecs.ComponentType { return CTagTrigger }
