package generate

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) on the given layer.
// Columns that already have a floor keep their layer.
func carveCorridor(p *Plan, x1, y1, x2, y2, layer int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(p, x1, y1, x2, y2, layer)
	case CorridorStraight:
		carveH(p, x1, x2, y1, layer)
		carveV(p, y1, y2, x2, layer)
	default: // LShaped
		if cfg.Rand.Intn(2) == 0 {
			carveH(p, x1, x2, y1, layer)
			carveV(p, y1, y2, x2, layer)
		} else {
			carveV(p, y1, y2, x1, layer)
			carveH(p, x1, x2, y2, layer)
		}
	}
}

func carveH(p *Plan, x1, x2, y, layer int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if p.InBounds(x, y) && !p.IsFloor(x, y) {
			p.set(x, y, layer)
		}
	}
}

func carveV(p *Plan, y1, y2, x, layer int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if p.InBounds(x, y) && !p.IsFloor(x, y) {
			p.set(x, y, layer)
		}
	}
}

func carveZShaped(p *Plan, x1, y1, x2, y2, layer int) {
	midY := (y1 + y2) / 2
	carveV(p, y1, midY, x1, layer)
	carveH(p, x1, x2, midY, layer)
	carveV(p, midY, y2, x2, layer)
}
