// Package frame holds the per-frame scratch state shared by the collision
// and occlusion engines. The calling loop owns one Arena and ends every frame
// through it.
package frame

import (
	"isoworld/internal/render"
	"isoworld/internal/system"
)

// Arena owns the storage that must not outlive a frame. Engines borrow it by
// reference; EndFrame resets it in place.
type Arena struct {
	Contacts *system.ContactSet
	Draw     *render.Scratch

	frame uint64
}

// NewArena returns an empty arena at frame zero.
func NewArena() *Arena {
	return &Arena{
		Contacts: system.NewContactSet(),
		Draw:     render.NewScratch(),
	}
}

// Frame returns the number of frames ended so far.
func (a *Arena) Frame() uint64 { return a.frame }

// EndFrame clears the contact set and the draw scratch and advances the
// frame counter. Contacts are cleared even when none were recorded.
func (a *Arena) EndFrame() {
	a.Reset()
	a.frame++
}

// Reset clears the frame state without advancing the counter. It is safe to
// call any number of times.
func (a *Arena) Reset() {
	a.Contacts.Clear()
	a.Draw.Reset()
}
