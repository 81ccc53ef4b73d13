package generate

import (
	"math/rand"

	"isoworld/assets"
	"isoworld/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation of one demo scene.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	// MaxLayer bounds room terraces; rooms are raised to a random layer in
	// [0, MaxLayer]. Keep it at 1 for scenes a jumping player can cross.
	MaxLayer       int
	CratesPerRoom  int
	PillarsPerRoom int
	TriggerCount   int
	TriggerLabels  []string
	Rand           *rand.Rand
}

// DefaultConfig returns the settings used by the viewers.
func DefaultConfig(rng *rand.Rand) *Config {
	return &Config{
		MapWidth:       36,
		MapHeight:      24,
		MinLeafSize:    7,
		MaxLeafSize:    14,
		MinRoomSize:    4,
		RoomPadding:    1,
		CorridorStyle:  CorridorLShaped,
		MaxLayer:       1,
		CratesPerRoom:  1,
		PillarsPerRoom: 1,
		TriggerCount:   3,
		TriggerLabels:  assets.TriggerLabels,
		Rand:           rng,
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false // already split
	}
	// Decide split direction: horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false // too small to split
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(p *Plan, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(p, cfg)
		}
		if l.right != nil {
			l.right.createRooms(p, cfg)
		}
		return
	}
	// Terminal leaf — place a room.
	pad := cfg.RoomPadding
	minW := cfg.MinRoomSize
	minH := cfg.MinRoomSize

	availW := l.W - 2*pad
	availH := l.H - 2*pad
	if availW < minW {
		availW = minW
	}
	if availH < minH {
		availH = minH
	}

	rw := minW + cfg.Rand.Intn(max(1, availW-minW+1))
	rh := minH + cfg.Rand.Intn(max(1, availH-minH+1))

	// Clamp to leaf bounds
	if rw > l.W-2*pad {
		rw = l.W - 2*pad
	}
	if rh > l.H-2*pad {
		rh = l.H - 2*pad
	}
	if rw < 3 {
		rw = 3
	}
	if rh < 3 {
		rh = 3
	}

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Safety clamp to map bounds (leave 1-tile border).
	if rx < 1 {
		rx = 1
	}
	if ry < 1 {
		ry = 1
	}
	if rx+rw >= p.Width {
		rw = p.Width - rx - 1
	}
	if ry+rh >= p.Height {
		rh = p.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room

	layer := cfg.Rand.Intn(cfg.MaxLayer + 1)
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			p.set(x, y, layer)
		}
	}
	p.Rooms = append(p.Rooms, room)
	p.RoomLayers = append(p.RoomLayers, layer)
}

// getRoom returns a room from this leaf (from children if split).
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *gamemap.Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	if rRoom == nil {
		return lRoom
	}
	return lRoom // just pick one
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(p *Plan, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(p, cfg)
	l.right.connectChildren(p, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	// Corridors run at the lower room's level; the higher room is a terrace
	// one jump up.
	layer := min(p.Layer(lCX, lCY), p.Layer(rCX, rCY))
	carveCorridor(p, lCX, lCY, rCX, rCY, layer, cfg)
}

// Generate runs BSP generation and returns the terraced layout.
func Generate(cfg *Config) *Plan {
	p := newPlan(cfg.MapWidth, cfg.MapHeight)

	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	// Build BSP tree.
	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(p, cfg)
	root.connectChildren(p, cfg)
	return p
}
