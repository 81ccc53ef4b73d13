package generate

import (
	"math/rand"
	"testing"
)

func defaultTestConfig(seed int64) *Config {
	cfg := DefaultConfig(rand.New(rand.NewSource(seed)))
	cfg.MapWidth = 60
	cfg.MapHeight = 30
	cfg.MinLeafSize = 8
	cfg.MaxLeafSize = 20
	return cfg
}

// TestGenerateAllRoomsConnected verifies that every floor column is
// reachable from the start via BFS (flood-fill) and that neighbouring
// floors never differ by more than one jump.
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		p := Generate(cfg)

		startX, startY := p.Start()
		if !p.IsFloor(startX, startY) {
			t.Fatalf("seed=%d: start (%d,%d) is not floor", seed, startX, startY)
		}

		visited := make([][]bool, p.Height)
		for y := range visited {
			visited[y] = make([]bool, p.Width)
		}
		queue := [][2]int{{startX, startY}}
		visited[startY][startX] = true

		dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				nx, ny := cur[0]+d[0], cur[1]+d[1]
				if !p.IsFloor(nx, ny) || visited[ny][nx] {
					continue
				}
				if diff := p.Layer(nx, ny) - p.Layer(cur[0], cur[1]); diff > 1 || diff < -1 {
					t.Errorf("seed=%d: step (%d,%d)->(%d,%d) climbs %d layers", seed, cur[0], cur[1], nx, ny, diff)
				}
				visited[ny][nx] = true
				queue = append(queue, [2]int{nx, ny})
			}
		}

		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				if p.IsFloor(x, y) && !visited[y][x] {
					t.Errorf("seed=%d: unreachable floor column at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

// TestGenerateRoomsDoNotOverlap verifies that no two rooms share interior tiles.
func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		p := Generate(defaultTestConfig(seed))

		rooms := p.Rooms
		if len(rooms) != len(p.RoomLayers) {
			t.Fatalf("seed=%d: %d rooms but %d layers", seed, len(rooms), len(p.RoomLayers))
		}
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersects(rooms[j]) {
					t.Errorf("seed=%d: room %d %v overlaps room %d %v",
						seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := Generate(defaultTestConfig(42))
	b := Generate(defaultTestConfig(42))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.Layer(x, y) != b.Layer(x, y) {
				t.Fatalf("column (%d,%d) differs: %d vs %d", x, y, a.Layer(x, y), b.Layer(x, y))
			}
		}
	}
}

func TestCarveKeepsExistingFloors(t *testing.T) {
	p := newPlan(20, 20)
	p.set(5, 5, 1)
	carveH(p, 3, 8, 5, 0)

	for x := 3; x <= 8; x++ {
		want := 0
		if x == 5 {
			want = 1
		}
		if got := p.Layer(x, 5); got != want {
			t.Errorf("layer at x=%d is %d; want %d", x, got, want)
		}
	}
	if p.IsFloor(2, 5) || p.IsFloor(9, 5) {
		t.Error("columns outside the segment must stay rock")
	}

	carveV(p, 9, 2, 12, 0)
	for y := 2; y <= 9; y++ {
		if !p.IsFloor(12, y) {
			t.Errorf("carveV missed (12,%d)", y)
		}
	}
}

func TestWallLayerSitsAboveHighestNeighbour(t *testing.T) {
	p := newPlan(5, 5)
	p.set(1, 1, 0)
	p.set(2, 1, 1)

	if l, ok := p.WallLayer(3, 1); !ok || l != 2 {
		t.Errorf("WallLayer(3,1) = %d, %v; want 2, true", l, ok)
	}
	if l, ok := p.WallLayer(0, 0); !ok || l != 1 {
		t.Errorf("WallLayer(0,0) = %d, %v; want 1, true", l, ok)
	}
	if _, ok := p.WallLayer(4, 4); ok {
		t.Error("column with no floor neighbour should get no wall")
	}
	if _, ok := p.WallLayer(1, 1); ok {
		t.Error("floor columns get no wall")
	}
}

func TestPopulatePlacesPropsOnFloor(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		p := Generate(cfg)
		res := Populate(p, cfg)

		check := func(sp SpawnPoint, what string) {
			if !p.IsFloor(sp.X, sp.Y) || p.Layer(sp.X, sp.Y) != sp.Z {
				t.Errorf("seed=%d: %s at %+v is not on the floor", seed, what, sp)
			}
		}
		check(res.Start, "start")
		check(res.Goal, "goal")
		for _, sp := range res.Crates {
			check(sp, "crate")
		}
		for _, sp := range res.Pillars {
			check(sp, "pillar")
		}
		for _, tr := range res.Triggers {
			check(tr.SpawnPoint, "trigger")
			if tr.Label == "" {
				t.Errorf("seed=%d: unlabelled trigger", seed)
			}
		}
		if len(res.Triggers) != cfg.TriggerCount {
			t.Errorf("seed=%d: %d triggers; want %d", seed, len(res.Triggers), cfg.TriggerCount)
		}
		if p.Rooms[0].Contains(res.Goal.X, res.Goal.Y) && len(p.Rooms) > 1 {
			t.Errorf("seed=%d: goal placed in the start room", seed)
		}
	}
}
