package render

import "github.com/gdamore/tcell/v2"

// layerShades tints tile backgrounds by layer so terraces read as depth.
// Emoji carry their own colours, so only the background is varied.
var layerShades = [...]tcell.Color{
	tcell.ColorBlack,
	tcell.NewRGBColor(18, 18, 28),
	tcell.NewRGBColor(30, 30, 44),
	tcell.NewRGBColor(44, 44, 62),
	tcell.NewRGBColor(60, 60, 82),
}

// ShadeFor returns the background colour for tiles on layer z. Layers below
// zero stay black; layers above the palette reuse its brightest shade.
func ShadeFor(z int) tcell.Color {
	switch {
	case z <= 0:
		return layerShades[0]
	case z >= len(layerShades):
		return layerShades[len(layerShades)-1]
	}
	return layerShades[z]
}

// fadedStyle dims a translucent projection. Terminals have no alpha, so any
// alpha below one renders dim.
func fadedStyle(s tcell.Style) tcell.Style {
	return s.Dim(true).Background(tcell.ColorBlack)
}
