// Package assets holds the glyphs and names the demo scene is dressed with.
package assets

// Emoji constants used as entity and tile glyphs.
const (
	GlyphPlayer     = "🧙"
	GlyphCrate      = "📦"
	GlyphPillar     = "🗿"
	GlyphTrigger    = "✨"
	GlyphBeacon     = "🔻"
	GlyphWall       = "🧱"
	GlyphFloor      = "🟫"
	GlyphGrass      = "🟩"
	GlyphWater      = "🟦"
	GlyphDoor       = "🚪"
	GlyphStairsDown = "🔽"
	GlyphStairsUp   = "🔼"
)

// TriggerLabels names the trigger pads, assigned round-robin.
var TriggerLabels = []string{
	"pressure plate",
	"rune circle",
	"loose flagstone",
	"humming glyph",
}
