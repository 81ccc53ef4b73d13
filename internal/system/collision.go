package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"isoworld/internal/component"
	"isoworld/internal/config"
	"isoworld/internal/ecs"
	"isoworld/internal/geom"
	"isoworld/internal/logging"
)

// ErrNoBody is returned when a mover has no Body to collide with.
var ErrNoBody = eris.New("entity has no body")

// axisPriority is the tie-break order for contact faces: vertical contacts
// (standing on something) win over lateral ones.
var axisPriority = [3]geom.Axis{geom.AxisZ, geom.AxisY, geom.AxisX}

// Movement describes the outcome of ResolveMovement.
type Movement struct {
	Requested mgl64.Vec3
	Applied   mgl64.Vec3
	// Contacts holds the contacts recorded by this move only.
	Contacts []Contact
	// Iterations is the number of clamp passes run.
	Iterations int
	// Saturated is set when the iteration bound stopped resolution and some
	// penetration was accepted.
	Saturated bool
}

// Blocked reports whether the applied delta was shortened on axis a.
func (m Movement) Blocked(a geom.Axis) bool {
	return m.Applied[a] != m.Requested[a]
}

type candidate struct {
	occ   ecs.Occupant
	box   geom.Box
	solid bool
}

// Collider predicts and resolves box contacts for movers in one World.
type Collider struct {
	w   *ecs.World
	cfg config.CollisionConfig
	log *zap.Logger
}

// NewCollider returns a Collider over w. A nil logger discards diagnostics.
func NewCollider(w *ecs.World, cfg config.CollisionConfig, log *zap.Logger) *Collider {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = config.Default().Collision.MaxIterations
	}
	return &Collider{w: w, cfg: cfg, log: logging.OrNop(log)}
}

// ResolveMovement moves entity id by at most delta. Solid occupants in the
// way clamp the delta on the contact axis so the boxes end flush; ghosts are
// only reported. Contacts are recorded in contacts and returned.
func (c *Collider) ResolveMovement(contacts *ContactSet, id ecs.EntityID, delta mgl64.Vec3) (Movement, error) {
	m := Movement{Requested: delta, Applied: delta}

	pos, ok := c.w.Position(id)
	if !ok {
		return m, eris.Wrapf(ecs.ErrEntityNotFound, "resolve movement of %d", id)
	}
	bc := c.w.Get(id, component.CBody)
	if bc == nil {
		return m, eris.Wrapf(ErrNoBody, "entity %d", id)
	}
	start := bc.(component.Body).Box(pos)
	moverSolid := c.w.Has(id, component.CTagSolid)
	eps := c.cfg.Epsilon

	cands := c.candidates(id, start.Swept(delta))

	record := func(cand candidate, face Face) {
		ct := Contact{Mover: id, Other: cand.occ, Face: face, Solid: cand.solid}
		if contacts.Record(ct) {
			m.Contacts = append(m.Contacts, ct)
		}
	}

	if moverSolid {
		for {
			if m.Iterations >= c.cfg.MaxIterations {
				m.Saturated = true
				c.log.Warn("collision iteration bound reached",
					zap.Uint64("entity", uint64(id)),
					zap.Int("iterations", m.Iterations),
					zap.Float64s("applied", m.Applied[:]))
				break
			}
			final := start.Translate(m.Applied)
			clamped := false
			for _, cand := range cands {
				if !cand.solid || !final.Intersects(cand.box, eps) {
					continue
				}
				axis, ok := contactAxis(start, final, cand.box, m.Applied, eps)
				if !ok {
					// Already embedded: no approach axis can separate them.
					record(cand, FaceNone)
					continue
				}
				d := m.Applied[axis]
				m.Applied[axis] = flush(start, cand.box, axis, d)
				record(cand, faceFor(axis, d))
				clamped = true
				break
			}
			if !clamped {
				break
			}
			m.Iterations++
		}
	}

	final := start.Translate(m.Applied)
	for _, cand := range cands {
		if moverSolid && cand.solid {
			continue
		}
		if !final.Intersects(cand.box, eps) {
			continue
		}
		face := FaceNone
		if axis, ok := contactAxis(start, final, cand.box, m.Applied, eps); ok {
			face = faceFor(axis, m.Applied[axis])
		}
		record(cand, face)
	}

	if err := c.w.Move(id, pos.Add(m.Applied)); err != nil {
		return m, err
	}
	if len(m.Contacts) > 0 {
		c.log.Debug("contacts resolved",
			zap.Uint64("entity", uint64(id)),
			zap.Int("contacts", len(m.Contacts)),
			zap.Int("iterations", m.Iterations))
	}
	return m, nil
}

// candidates collects every occupant near the swept volume, excluding the
// mover itself, in the grid's deterministic order. The cell range is
// widened by the larger of QueryMargin and the world's MaxReach, so bodies
// anchored outside the swept cells but reaching into them are still seen.
func (c *Collider) candidates(self ecs.EntityID, swept geom.Box) []candidate {
	v := c.w.View()
	m := max(c.cfg.QueryMargin, v.MaxReach())
	lo, hi := swept.Cells()
	lo = lo.Add(geom.Cell{X: -m, Y: -m, Z: -m})
	hi = hi.Add(geom.Cell{X: m, Y: m, Z: m})

	var out []candidate
	for _, occ := range v.OccupantsIn(lo, hi) {
		if occ.IsTile() {
			t, _ := v.TileAt(occ.Cell)
			out = append(out, candidate{occ: occ, box: t.Box(occ.Cell), solid: t.Solid})
			continue
		}
		if occ.Entity == self {
			continue
		}
		bc := v.Get(occ.Entity, component.CBody)
		if bc == nil {
			continue
		}
		pos, _ := v.Position(occ.Entity)
		out = append(out, candidate{
			occ:   occ,
			box:   bc.(component.Body).Box(pos),
			solid: v.Has(occ.Entity, component.CTagSolid),
		})
	}
	return out
}

// contactAxis picks the axis along which the mover ran into other: among the
// axes it moves along toward other, starting separated or touching, the one
// with the smallest overlap in the final position. Ties go to axisPriority.
func contactAxis(start, final, other geom.Box, d mgl64.Vec3, eps float64) (geom.Axis, bool) {
	ov := final.Overlap(other)
	startOv := start.Overlap(other)
	startMax, otherMax := start.Max(), other.Max()

	found := false
	var best geom.Axis
	bestDepth := math.Inf(1)
	for _, a := range axisPriority {
		switch {
		case d[a] == 0, startOv[a] > eps:
			continue
		case d[a] < 0 && otherMax[a] > start.Min[a]+eps:
			continue
		case d[a] > 0 && other.Min[a] < startMax[a]-eps:
			continue
		}
		if !found || ov[a] < bestDepth-eps {
			best, bestDepth, found = a, ov[a], true
		}
	}
	return best, found
}

// flush returns the delta on axis a that leaves start touching other.
func flush(start, other geom.Box, a geom.Axis, d float64) float64 {
	if d < 0 {
		return math.Min(0, math.Max(d, other.Max()[a]-start.Min[a]))
	}
	return math.Max(0, math.Min(d, other.Min[a]-start.Max()[a]))
}
