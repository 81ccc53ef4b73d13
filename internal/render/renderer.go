package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"

	"isoworld/internal/config"
)

// statusRows is the height reserved at the bottom of the screen for the HUD.
const statusRows = 3

// Renderer paints a draw order onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *IsoCamera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, cfg config.RenderConfig) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewIsoCamera(cfg, w, max(h-statusRows, 1)),
	}
}

// Camera returns the camera used for projection and drawing.
func (r *Renderer) Camera() *IsoCamera { return r.camera }

// Resize picks up a new screen size, keeping the camera centred on p.
func (r *Renderer) Resize(p mgl64.Vec3) {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-statusRows, 1)
	r.camera.Center(p)
}

// CenterOn recenters the camera on world point p.
func (r *Renderer) CenterOn(p mgl64.Vec3) { r.camera.Center(p) }

// DrawFrame clears the screen and draws order back to front. Hidden
// projections are skipped and faded ones are drawn dim.
func (r *Renderer) DrawFrame(order []*Projection) {
	r.screen.Clear()
	for _, p := range order {
		if p.Hidden || p.Glyph == "" {
			continue
		}
		x, y := r.camera.Anchor(p.World)
		x -= runewidth.StringWidth(p.Glyph) / 2
		if y < 0 || y >= r.camera.ViewHeight {
			continue
		}
		style := p.Style
		if p.Faded() {
			style = fadedStyle(style)
		}
		r.putGlyph(x, y, p.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
