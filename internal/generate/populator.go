package generate

import "isoworld/internal/gamemap"

// SpawnPoint is a floor column and the layer of its surface.
type SpawnPoint struct {
	X, Y, Z int
}

// TriggerSpawn is a labelled trigger pad.
type TriggerSpawn struct {
	SpawnPoint
	Label string
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Start    SpawnPoint
	Goal     SpawnPoint
	Crates   []SpawnPoint
	Pillars  []SpawnPoint
	Triggers []TriggerSpawn
}

// Populate places props in the generated rooms. The first room is left
// clear for the player; the last room holds the goal.
func Populate(p *Plan, cfg *Config) PopulateResult {
	var result PopulateResult
	at := func(x, y int) SpawnPoint { return SpawnPoint{X: x, Y: y, Z: p.Layer(x, y)} }

	sx, sy := p.Start()
	result.Start = at(sx, sy)
	if len(p.Rooms) == 0 {
		return result
	}
	gx, gy := p.Rooms[len(p.Rooms)-1].Center()
	result.Goal = at(gx, gy)

	// occupied tracks every column already claimed this pass so that no two
	// props share a tile.
	type pt = [2]int
	occupied := map[pt]bool{{sx, sy}: true, {gx, gy}: true}
	pick := func(room gamemap.Rect) SpawnPoint {
		x, y := pickFreeInRoom(room, cfg, occupied)
		occupied[pt{x, y}] = true
		return at(x, y)
	}

	rooms := p.Rooms
	placeable := rooms[1:]
	for _, room := range placeable {
		for range cfg.PillarsPerRoom {
			result.Pillars = append(result.Pillars, pick(room))
		}
		for range cfg.CratesPerRoom {
			result.Crates = append(result.Crates, pick(room))
		}
	}

	for i := 0; i < cfg.TriggerCount; i++ {
		room := rooms[cfg.Rand.Intn(len(rooms))]
		label := "trigger"
		if len(cfg.TriggerLabels) > 0 {
			label = cfg.TriggerLabels[i%len(cfg.TriggerLabels)]
		}
		result.Triggers = append(result.Triggers, TriggerSpawn{SpawnPoint: pick(room), Label: label})
	}
	return result
}

// pickFreeInRoom tries up to 20 times to find an unoccupied position inside
// room. If all attempts hit an occupied tile it falls back to any position
// (avoids an infinite loop in very crowded rooms).
func pickFreeInRoom(room gamemap.Rect, cfg *Config, occupied map[[2]int]bool) (int, int) {
	const maxAttempts = 20
	for range maxAttempts {
		x, y := randomInRoom(room, cfg)
		if !occupied[[2]int{x, y}] {
			return x, y
		}
	}
	return randomInRoom(room, cfg)
}

func randomInRoom(room gamemap.Rect, cfg *Config) (int, int) {
	// Shrink by 1 from each edge so props never block a corridor mouth.
	x1, y1 := room.X1+1, room.Y1+1
	x2, y2 := room.X2-1, room.Y2-1
	// Fall back to full room bounds for very small rooms.
	if x1 > x2 || y1 > y2 {
		x1, y1 = room.X1, room.Y1
		x2, y2 = room.X2, room.Y2
	}
	w := x2 - x1 + 1
	h := y2 - y1 + 1
	x := x1 + cfg.Rand.Intn(max(1, w))
	y := y1 + cfg.Rand.Intn(max(1, h))
	return x, y
}
