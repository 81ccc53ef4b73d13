package render

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes what a draw order would put on screen: which occupant
// is drawn, where, in what order and how faded. Viewers compare fingerprints
// to skip redrawing identical frames.
func Fingerprint(order []*Projection) uint64 {
	d := xxhash.New()
	var buf [8 * 8]byte
	for _, p := range order {
		b := buf[:0]
		b = binary.LittleEndian.AppendUint64(b, uint64(p.Source.Kind))
		b = binary.LittleEndian.AppendUint64(b, uint64(p.Source.Entity))
		b = binary.LittleEndian.AppendUint64(b, uint64(int64(p.Source.Cell.X)))
		b = binary.LittleEndian.AppendUint64(b, uint64(int64(p.Source.Cell.Y)))
		b = binary.LittleEndian.AppendUint64(b, uint64(int64(p.Source.Cell.Z)))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Screen.MinX))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Screen.MinY))
		alpha := p.Alpha
		if p.Hidden {
			alpha = -1
		}
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(alpha))
		_, _ = d.Write(b)
		_, _ = d.WriteString(p.Glyph)
	}
	return d.Sum64()
}
