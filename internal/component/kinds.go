package component

import "isoworld/internal/ecs"

// kindNames is the closed set of component kinds and their persisted names.
var kindNames = map[ecs.ComponentType]string{
	CBody:       "body",
	CTagSolid:   "solid",
	CVelocity:   "velocity",
	CRenderable: "renderable",
	CTagPlayer:  "player",
	CTagFocus:   "focus",
	CTagTrigger: "trigger",
	CLabel:      "label",
}

// KindName returns the persisted name of kind t, or "" if t is not a kind.
func KindName(t ecs.ComponentType) string {
	return kindNames[t]
}

// KindByName resolves a persisted name.
func KindByName(name string) (ecs.ComponentType, bool) {
	for t, n := range kindNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
