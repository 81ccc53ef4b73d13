package factory

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"

	"isoworld/internal/ecs"
	"isoworld/internal/gamemap"
	"isoworld/internal/generate"
	"isoworld/internal/geom"
)

// Scene lists the entities created by BuildScene.
type Scene struct {
	Player   ecs.EntityID
	Beacon   ecs.EntityID
	Crates   []ecs.EntityID
	Pillars  []ecs.EntityID
	Triggers []ecs.EntityID
	Goal     geom.Cell
}

// at returns the world position of an entity standing on sp.
func at(sp generate.SpawnPoint) mgl64.Vec3 {
	return mgl64.Vec3{float64(sp.X), float64(sp.Y), float64(sp.Z)}
}

// BuildScene lays the plan's tiles into w and creates its entities.
func BuildScene(w *ecs.World, p *generate.Plan, spawns generate.PopulateResult, playerName string) (Scene, error) {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if l := p.Layer(x, y); l != generate.Rock {
				w.SetTile(geom.Cell{X: x, Y: y, Z: l}, gamemap.MakeFloor())
				continue
			}
			if l, ok := p.WallLayer(x, y); ok {
				w.SetTile(geom.Cell{X: x, Y: y, Z: l}, gamemap.MakeWall())
			}
		}
	}

	var sc Scene
	sc.Goal = geom.Cell{X: spawns.Goal.X, Y: spawns.Goal.Y, Z: spawns.Goal.Z}
	if len(p.Rooms) > 1 {
		w.SetTile(sc.Goal, gamemap.MakeStairsDown())
	}

	var err error
	if sc.Player, err = NewPlayer(w, at(spawns.Start), playerName); err != nil {
		return sc, eris.Wrap(err, "create player")
	}
	for _, sp := range spawns.Pillars {
		id, err := NewPillar(w, at(sp))
		if err != nil {
			return sc, eris.Wrap(err, "create pillar")
		}
		sc.Pillars = append(sc.Pillars, id)
	}
	for _, sp := range spawns.Crates {
		id, err := NewCrate(w, at(sp))
		if err != nil {
			return sc, eris.Wrap(err, "create crate")
		}
		sc.Crates = append(sc.Crates, id)
	}
	for _, tr := range spawns.Triggers {
		id, err := NewTrigger(w, at(tr.SpawnPoint), tr.Label)
		if err != nil {
			return sc, eris.Wrap(err, "create trigger")
		}
		sc.Triggers = append(sc.Triggers, id)
	}
	if sc.Beacon, err = NewBeacon(w, at(spawns.Goal).Add(mgl64.Vec3{0, 0, 1})); err != nil {
		return sc, eris.Wrap(err, "create beacon")
	}
	return sc, nil
}
