package game

import (
	"math/rand"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"isoworld/internal/ecs"
	"isoworld/internal/factory"
	"isoworld/internal/generate"
)

// NewScene generates the demo world for seed. The same seed always yields
// the same layout.
func NewScene(seed int64, playerName string, log *zap.Logger) (*ecs.World, factory.Scene, error) {
	cfg := generate.DefaultConfig(rand.New(rand.NewSource(seed)))
	plan := generate.Generate(cfg)
	spawns := generate.Populate(plan, cfg)

	w := ecs.NewWorld(ecs.WithLogger(log))
	sc, err := factory.BuildScene(w, plan, spawns, playerName)
	if err != nil {
		return nil, sc, eris.Wrapf(err, "build scene for seed %d", seed)
	}
	return w, sc, nil
}
