package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
)

// Status is the per-frame summary shown under the scene.
type Status struct {
	Frame       uint64
	Player      mgl64.Vec3
	Projections int
	Contacts    int
	Broken      int
	Message     string
}

// DrawHUD renders the status bar at the bottom of the screen and shows the
// frame.
func (r *Renderer) DrawHUD(s Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - statusRows

	r.drawHLine(hudY, tcell.ColorGray)

	line := fmt.Sprintf("frame %d  pos (%.1f, %.1f, %.1f)  drawn %d  contacts %d",
		s.Frame, s.Player.X(), s.Player.Y(), s.Player.Z(), s.Projections, s.Contacts)
	if s.Broken > 0 {
		line += fmt.Sprintf("  cycles %d", s.Broken)
	}
	r.drawText(0, hudY+1, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if s.Message != "" {
		r.drawText(0, hudY+2, s.Message, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
