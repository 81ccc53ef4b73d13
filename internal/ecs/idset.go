package ecs

import "slices"

// idSet is an ascending set of entity IDs. IDs are minted in increasing
// order, so iteration order equals creation order and is stable for the
// lifetime of the process.
type idSet struct {
	ids []EntityID
}

func (s *idSet) insert(id EntityID) bool {
	i, found := slices.BinarySearch(s.ids, id)
	if found {
		return false
	}
	s.ids = slices.Insert(s.ids, i, id)
	return true
}

func (s *idSet) remove(id EntityID) bool {
	i, found := slices.BinarySearch(s.ids, id)
	if !found {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

func (s *idSet) has(id EntityID) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

func (s *idSet) len() int { return len(s.ids) }

// items returns a copy safe to retain across mutations.
func (s *idSet) items() []EntityID {
	return slices.Clone(s.ids)
}
