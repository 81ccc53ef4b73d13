package component

import (
	"github.com/gdamore/tcell/v2"

	"isoworld/internal/ecs"
)

const CRenderable ecs.ComponentType = 4

// RenderLayer separates world geometry from overlays such as selection
// markers, which always draw after the world.
type RenderLayer uint8

const (
	LayerWorld RenderLayer = iota
	LayerOverlay
)

type Renderable struct {
	Glyph   string
	FGColor tcell.Color
	BGColor tcell.Color
	Layer   RenderLayer
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
