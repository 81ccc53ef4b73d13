package system

import (
	"isoworld/internal/ecs"
	"isoworld/internal/geom"
)

// Face is the side of the mover's box that touched the other occupant.
type Face uint8

const (
	FaceNone   Face = iota // overlapping without a resolvable approach axis
	FaceBottom             // moving -z
	FaceTop                // moving +z
	FaceBack               // moving -y
	FaceFront              // moving +y
	FaceLeft               // moving -x
	FaceRight              // moving +x
)

var faceNames = [...]string{"none", "bottom", "top", "back", "front", "left", "right"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "unknown"
}

// Axis returns the axis the face is perpendicular to. FaceNone reports false.
func (f Face) Axis() (geom.Axis, bool) {
	switch f {
	case FaceBottom, FaceTop:
		return geom.AxisZ, true
	case FaceBack, FaceFront:
		return geom.AxisY, true
	case FaceLeft, FaceRight:
		return geom.AxisX, true
	}
	return 0, false
}

func faceFor(axis geom.Axis, d float64) Face {
	switch axis {
	case geom.AxisZ:
		if d < 0 {
			return FaceBottom
		}
		return FaceTop
	case geom.AxisY:
		if d < 0 {
			return FaceBack
		}
		return FaceFront
	default:
		if d < 0 {
			return FaceLeft
		}
		return FaceRight
	}
}

// Contact is one collision observed while resolving a move.
type Contact struct {
	Mover ecs.EntityID
	Other ecs.Occupant
	Face  Face
	// Solid is true when the other occupant blocks movement.
	Solid bool
}

// ContactSet collects the contacts of the current frame, per mover. It must
// be cleared at every frame end; Clear keeps the allocated storage.
type ContactSet struct {
	byMover map[ecs.EntityID][]Contact
	movers  []ecs.EntityID
	total   int
}

// NewContactSet returns an empty set.
func NewContactSet() *ContactSet {
	return &ContactSet{byMover: make(map[ecs.EntityID][]Contact)}
}

// Record adds c unless the mover already touched the same occupant this
// frame. It reports whether c was added.
func (s *ContactSet) Record(c Contact) bool {
	list, seen := s.byMover[c.Mover]
	for _, prev := range list {
		if prev.Other == c.Other {
			return false
		}
	}
	if !seen {
		s.movers = append(s.movers, c.Mover)
	}
	s.byMover[c.Mover] = append(list, c)
	s.total++
	return true
}

// For returns the contacts recorded for mover, in the order they occurred.
func (s *ContactSet) For(mover ecs.EntityID) []Contact {
	return s.byMover[mover]
}

// Movers returns the movers with contacts, in first-contact order.
func (s *ContactSet) Movers() []ecs.EntityID {
	return s.movers
}

// Len returns the number of recorded contacts.
func (s *ContactSet) Len() int { return s.total }

// Clear empties the set. Clearing an empty set is a no-op.
func (s *ContactSet) Clear() {
	clear(s.byMover)
	s.movers = s.movers[:0]
	s.total = 0
}
