package render

type visitState uint8

const (
	unvisited visitState = iota
	onPath
	done
)

// Scratch holds the per-frame working storage of projection and sorting.
// Reset truncates everything in place so the next frame reuses the memory.
type Scratch struct {
	projs []Projection
	ptrs  []*Projection
	rels  []Relation
	preds [][]int
	succs [][]int
	indeg []int
	ready indexHeap
	state []visitState
	depth []int
	edges []int
	out   []*Projection
}

// NewScratch returns empty scratch storage.
func NewScratch() *Scratch { return &Scratch{} }

// Reset drops the frame's projections, relations and order. Resetting twice
// is the same as resetting once.
func (s *Scratch) Reset() {
	clear(s.projs)
	s.projs = s.projs[:0]
	clear(s.ptrs)
	s.ptrs = s.ptrs[:0]
	clear(s.rels)
	s.rels = s.rels[:0]
	for i := range s.preds {
		s.preds[i] = s.preds[i][:0]
	}
	s.preds = s.preds[:0]
	for i := range s.succs {
		s.succs[i] = s.succs[i][:0]
	}
	s.succs = s.succs[:0]
	s.indeg = s.indeg[:0]
	s.ready = s.ready[:0]
	s.state = s.state[:0]
	s.depth = s.depth[:0]
	s.edges = s.edges[:0]
	clear(s.out)
	s.out = s.out[:0]
}

// Len returns the number of projections currently held.
func (s *Scratch) Len() int { return len(s.projs) }

// prepare sizes the per-node tables for n projections, keeping the capacity
// of adjacency lists from earlier frames.
func (s *Scratch) prepare(n int) {
	s.preds = lists(s.preds, n)
	s.succs = lists(s.succs, n)
	s.indeg = resize(s.indeg, n)
	s.state = resize(s.state, n)
	s.depth = resize(s.depth, n)
	s.ready = s.ready[:0]
	s.edges = s.edges[:0]
	s.out = s.out[:0]
}

func lists(l [][]int, n int) [][]int {
	if cap(l) >= n {
		l = l[:n]
	} else {
		l = append(l[:cap(l)], make([][]int, n-cap(l))...)
	}
	for i := range l {
		l[i] = l[i][:0]
	}
	return l
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

// indexHeap is a min-heap of projection indexes.
type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }

func (h *indexHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}
