package render

import (
	"math"

	"github.com/rotisserie/eris"

	"isoworld/internal/component"
	"isoworld/internal/config"
)

// Strategy adjusts occlusion for special cases. Every relation of a frame
// passes through FirstPass of every strategy, then the unsuppressed ones
// through SecondPass, and EndFrame runs once per strategy after that.
type Strategy interface {
	Name() string
	// FirstPass may suppress the relation.
	FirstPass(r *Relation)
	// SecondPass may reorder the relation.
	SecondPass(r *Relation)
	// EndFrame sees every projection after all relations were decided.
	EndFrame(projs []*Projection)
}

const (
	defaultCutawayAlpha = 0.25
	defaultFadeAlpha    = 0.35
)

// NewStrategies builds the configured strategies in order.
func NewStrategies(cfgs []config.StrategyConfig) ([]Strategy, error) {
	out := make([]Strategy, 0, len(cfgs))
	for _, c := range cfgs {
		switch c.Name {
		case config.StrategyCutaway:
			out = append(out, &Cutaway{Layer: c.Layer, Hide: c.Hide, Alpha: alphaOr(c.Alpha, defaultCutawayAlpha)})
		case config.StrategyFlatFloor:
			out = append(out, FlatFloor{})
		case config.StrategyOccluderFade:
			out = append(out, &OccluderFade{Alpha: alphaOr(c.Alpha, defaultFadeAlpha)})
		case config.StrategyOverlay:
			out = append(out, Overlay{})
		default:
			return nil, eris.Wrapf(config.ErrInvalid, "unknown occlusion strategy %q", c.Name)
		}
	}
	return out, nil
}

func alphaOr(a, def float64) float64 {
	if a <= 0 || a > 1 {
		return def
	}
	return a
}

// Cutaway fades or hides everything above Layer, like an editor peeling
// away upper floors. Draw order is untouched.
type Cutaway struct {
	Layer int
	Hide  bool
	Alpha float64
}

func (*Cutaway) Name() string         { return config.StrategyCutaway }
func (*Cutaway) FirstPass(*Relation)  {}
func (*Cutaway) SecondPass(*Relation) {}

func (c *Cutaway) EndFrame(projs []*Projection) {
	for _, p := range projs {
		if p.Level() <= c.Layer || p.Layer == component.LayerOverlay {
			continue
		}
		if c.Hide {
			p.Hidden = true
		} else {
			p.Alpha = math.Min(p.Alpha, c.Alpha)
		}
	}
}

// FlatFloor drops relations between ground tiles of the same layer. Their
// bounding rectangles overlap on screen but their faces never do.
type FlatFloor struct{}

func (FlatFloor) Name() string { return config.StrategyFlatFloor }

func (FlatFloor) FirstPass(r *Relation) {
	if r.Behind.Flat && r.Front.Flat && r.Behind.Level() == r.Front.Level() {
		r.Suppressed = true
	}
}

func (FlatFloor) SecondPass(*Relation)   {}
func (FlatFloor) EndFrame([]*Projection) {}

// OccluderFade makes blocks drawn over a focus projection translucent, so
// the player stays visible behind walls. Ground tiles are left alone.
type OccluderFade struct {
	Alpha float64

	occluders []*Projection
}

func (*OccluderFade) Name() string        { return config.StrategyOccluderFade }
func (*OccluderFade) FirstPass(*Relation) {}

func (f *OccluderFade) SecondPass(r *Relation) {
	if r.Behind.Focus && !r.Front.Focus && !r.Front.Flat && r.Front.Layer == component.LayerWorld {
		f.occluders = append(f.occluders, r.Front)
	}
}

func (f *OccluderFade) EndFrame([]*Projection) {
	for _, p := range f.occluders {
		p.Alpha = math.Min(p.Alpha, f.Alpha)
	}
	clear(f.occluders)
	f.occluders = f.occluders[:0]
}

// Overlay forces overlay projections (markers, cursors) after the world
// projections they overlap.
type Overlay struct{}

func (Overlay) Name() string        { return config.StrategyOverlay }
func (Overlay) FirstPass(*Relation) {}

func (Overlay) SecondPass(r *Relation) {
	if r.Behind.Layer == component.LayerOverlay && r.Front.Layer == component.LayerWorld {
		r.swap()
	}
}

func (Overlay) EndFrame([]*Projection) {}
