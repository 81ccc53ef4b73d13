package render

import (
	"container/heap"
	"math"
	"slices"

	"go.uber.org/zap"

	"isoworld/internal/logging"
)

// depthEpsilon is the tolerance used when comparing world box extents.
const depthEpsilon = 1e-9

// Relation is an edge of the occlusion graph: Behind draws before Front.
type Relation struct {
	Behind, Front *Projection
	// Overlap is the shared screen area. Cycles are broken at the relation
	// with the smallest overlap.
	Overlap float64
	// Suppressed relations impose no order. Set by first-pass strategies.
	Suppressed bool

	broken bool
}

// Broken reports whether the relation was dropped to break a cycle.
func (r *Relation) Broken() bool { return r.broken }

// swap reverses the relation.
func (r *Relation) swap() { r.Behind, r.Front = r.Front, r.Behind }

// behind reports whether a draws before b. A world axis on which one box
// ends before the other begins decides; when no axis separates them, or two
// axes disagree, the box whose centre has the smaller x+y+z goes first and
// exact ties fall back to input order.
func behind(a, b *Projection) bool {
	aMax, bMax := a.World.Max(), b.World.Max()
	aFirst, bFirst := false, false
	for i := 0; i < 3; i++ {
		if aMax[i] <= b.World.Min[i]+depthEpsilon {
			aFirst = true
		}
		if bMax[i] <= a.World.Min[i]+depthEpsilon {
			bFirst = true
		}
	}
	if aFirst != bFirst {
		return aFirst
	}
	ca, cb := a.World.Center(), b.World.Center()
	da := ca.X() + ca.Y() + ca.Z()
	db := cb.X() + cb.Y() + cb.Z()
	if math.Abs(da-db) > depthEpsilon {
		return da < db
	}
	return a.index < b.index
}

// Sorter turns a frame's projections into a back-to-front draw order.
type Sorter struct {
	strategies []Strategy
	scratch    *Scratch
	log        *zap.Logger
	broken     int
}

// NewSorter returns a Sorter working in sc. Strategies run in the given
// order.
func NewSorter(sc *Scratch, log *zap.Logger, strategies ...Strategy) *Sorter {
	if sc == nil {
		sc = NewScratch()
	}
	return &Sorter{strategies: strategies, scratch: sc, log: logging.OrNop(log)}
}

// Strategies returns the strategies in the order they run.
func (s *Sorter) Strategies() []Strategy { return s.strategies }

// Scratch returns the storage the Sorter works in.
func (s *Sorter) Scratch() *Scratch { return s.scratch }

// Broken returns the number of relations dropped to break cycles during the
// last BuildDrawOrder.
func (s *Sorter) Broken() int { return s.broken }

// Relations returns the relations built by the last BuildDrawOrder.
func (s *Sorter) Relations() []Relation { return s.scratch.rels }

// BuildDrawOrder returns projs ordered so that every projection is preceded
// by everything it must draw over. Among projections free to draw at the same
// time the earliest in projs goes first, so unrelated projections keep their
// input order. Cycles never fail the frame: one relation per cycle is dropped
// and logged.
//
// The returned slice belongs to the Sorter's scratch and is valid until the
// scratch is reset.
func (s *Sorter) BuildDrawOrder(projs []*Projection) []*Projection {
	sc := s.scratch
	s.broken = 0
	sc.rels = sc.rels[:0]
	for i, p := range projs {
		p.index = i
	}
	s.relate(projs)

	for i := range sc.rels {
		for _, st := range s.strategies {
			st.FirstPass(&sc.rels[i])
		}
	}
	for i := range sc.rels {
		if sc.rels[i].Suppressed {
			continue
		}
		for _, st := range s.strategies {
			st.SecondPass(&sc.rels[i])
		}
	}
	for _, st := range s.strategies {
		st.EndFrame(projs)
	}

	return s.resolve(projs)
}

// relate records one relation per pair of projections whose screen
// rectangles overlap.
func (s *Sorter) relate(projs []*Projection) {
	sc := s.scratch
	for i, a := range projs {
		for _, b := range projs[i+1:] {
			area := a.Screen.OverlapArea(b.Screen)
			if area <= 0 {
				continue
			}
			r := Relation{Behind: a, Front: b, Overlap: area}
			if !behind(a, b) {
				r.swap()
			}
			sc.rels = append(sc.rels, r)
		}
	}
}

// resolve emits the lexicographically smallest topological order: whenever
// several projections are free to draw, the one earliest in the input goes
// first. When every remaining projection waits on another, one cycle is
// broken and the walk resumes.
func (s *Sorter) resolve(projs []*Projection) []*Projection {
	sc := s.scratch
	sc.prepare(len(projs))
	// Relations were appended pair by pair, so each node's predecessor list
	// is already in input order.
	for i := range sc.rels {
		r := &sc.rels[i]
		if r.Suppressed {
			continue
		}
		sc.preds[r.Front.index] = append(sc.preds[r.Front.index], i)
		sc.succs[r.Behind.index] = append(sc.succs[r.Behind.index], i)
		sc.indeg[r.Front.index]++
	}
	for i, n := range sc.indeg {
		if n == 0 {
			heap.Push(&sc.ready, i)
		}
	}

	for len(sc.out) < len(projs) {
		if sc.ready.Len() == 0 {
			s.breakCycle()
			continue
		}
		v := heap.Pop(&sc.ready).(int)
		sc.state[v] = done
		sc.out = append(sc.out, projs[v])
		for _, e := range sc.succs[v] {
			if !sc.rels[e].broken {
				s.release(sc.rels[e].Front.index)
			}
		}
	}
	return sc.out
}

// release drops one pending predecessor of v.
func (s *Sorter) release(v int) {
	sc := s.scratch
	sc.indeg[v]--
	if sc.indeg[v] == 0 {
		heap.Push(&sc.ready, v)
	}
}

// breakCycle follows pending predecessors from the earliest waiting
// projection until a node repeats, then drops the relation with the smallest
// overlap on that cycle.
func (s *Sorter) breakCycle() {
	sc := s.scratch
	v := slices.IndexFunc(sc.state, func(st visitState) bool { return st != done })
	sc.edges = sc.edges[:0]
	for sc.state[v] != onPath {
		sc.state[v] = onPath
		sc.depth[v] = len(sc.edges)
		e := s.pendingPred(v)
		sc.edges = append(sc.edges, e)
		v = sc.rels[e].Behind.index
	}
	cycle := sc.edges[sc.depth[v]:]
	for _, e := range sc.edges {
		sc.state[sc.rels[e].Front.index] = unvisited
	}

	drop := cycle[0]
	for _, e := range cycle[1:] {
		if sc.rels[e].Overlap < sc.rels[drop].Overlap {
			drop = e
		}
	}
	r := &sc.rels[drop]
	r.broken = true
	s.broken++
	s.log.Warn("occlusion cycle broken",
		zap.Stringer("behind", r.Behind.Source),
		zap.Stringer("front", r.Front.Source),
		zap.Int("cycle_len", len(cycle)),
		zap.Float64("overlap", r.Overlap))
	s.release(r.Front.index)
}

// pendingPred returns the first intact relation into v whose Behind has not
// been drawn. A node with no ready predecessor always has one.
func (s *Sorter) pendingPred(v int) int {
	sc := s.scratch
	for _, e := range sc.preds[v] {
		r := &sc.rels[e]
		if !r.broken && sc.state[r.Behind.index] != done {
			return e
		}
	}
	panic("render: waiting projection has no pending predecessor")
}
