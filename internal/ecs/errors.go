package ecs

import "github.com/rotisserie/eris"

var (
	ErrEntityNotFound     = eris.New("entity does not exist")
	ErrUnknownComponent   = eris.New("component type outside the registered kind range")
	ErrDuplicateComponent = eris.New("component kind supplied twice")
	ErrNilComponent       = eris.New("nil component")
	ErrInvalidComponent   = eris.New("component failed validation")

	// ErrIndexCorrupted marks a broken index invariant. It is never returned
	// for bad input; seeing it means the World itself is wrong.
	ErrIndexCorrupted = eris.New("world index invariant violated")
)
