package generate

import "isoworld/internal/gamemap"

// Rock marks a column with no floor.
const Rock = -1

// Plan is a generated layout. Each (x, y) column holds the layer of its
// floor surface, or Rock.
type Plan struct {
	Width, Height int
	Rooms         []gamemap.Rect
	RoomLayers    []int

	layers []int
}

func newPlan(w, h int) *Plan {
	p := &Plan{Width: w, Height: h, layers: make([]int, w*h)}
	for i := range p.layers {
		p.layers[i] = Rock
	}
	return p
}

// InBounds reports whether (x, y) lies inside the plan.
func (p *Plan) InBounds(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// Layer returns the floor layer of column (x, y); Rock when out of bounds.
func (p *Plan) Layer(x, y int) int {
	if !p.InBounds(x, y) {
		return Rock
	}
	return p.layers[y*p.Width+x]
}

// IsFloor reports whether column (x, y) has a floor.
func (p *Plan) IsFloor(x, y int) bool { return p.Layer(x, y) != Rock }

func (p *Plan) set(x, y, layer int) {
	if p.InBounds(x, y) {
		p.layers[y*p.Width+x] = layer
	}
}

// Start returns the column the player starts on: the centre of the first
// room.
func (p *Plan) Start() (int, int) {
	if len(p.Rooms) == 0 {
		return 1, 1
	}
	return p.Rooms[0].Center()
}

// WallLayer returns the layer of the wall block to place on rock column
// (x, y): one above the highest neighbouring floor. ok is false when no
// floor touches the column.
func (p *Plan) WallLayer(x, y int) (layer int, ok bool) {
	if p.IsFloor(x, y) {
		return 0, false
	}
	layer = Rock
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			layer = max(layer, p.Layer(x+dx, y+dy))
		}
	}
	if layer == Rock {
		return 0, false
	}
	return layer + 1, true
}
