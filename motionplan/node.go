package motionplan

import (
	"github.com/golang/geo/r3"
)

// rootSentinel marks the tree root, which has no parent.
const rootSentinel = -1

// vertex is a single tree node: a planar position, the cost of the edge to its parent
// (not cumulative), and the parent's index into the tree's arena. Parents are stored as
// indices rather than pointers so the arena can grow without invalidating references.
type vertex struct {
	pos    r3.Vector
	cost   float64
	parent int
}

// rrtTree exclusively owns all vertices for one planning call. It is append-only except
// for parent-link reassignment during rewiring.
type rrtTree struct {
	vertices []vertex
}

func newRRTTree(capacity int) *rrtTree {
	return &rrtTree{vertices: make([]vertex, 0, capacity)}
}

func (t *rrtTree) size() int {
	return len(t.vertices)
}

// addRoot inserts the start vertex. Must be the first insertion.
func (t *rrtTree) addRoot(pos r3.Vector) int {
	t.vertices = t.vertices[:0]
	return t.add(pos, 0, rootSentinel)
}

// add appends a vertex and returns its index.
func (t *rrtTree) add(pos r3.Vector, cost float64, parent int) int {
	t.vertices = append(t.vertices, vertex{pos: pos, cost: cost, parent: parent})
	return len(t.vertices) - 1
}

// setParent reassigns a vertex's parent link and edge cost.
func (t *rrtTree) setParent(idx, parent int, cost float64) {
	t.vertices[idx].parent = parent
	t.vertices[idx].cost = cost
}

// costFromRoot sums edge costs along the parent chain from the given vertex to the root.
func (t *rrtTree) costFromRoot(idx int) float64 {
	total := 0.
	for cur := idx; cur != rootSentinel; cur = t.vertices[cur].parent {
		total += t.vertices[cur].cost
	}
	return total
}

// isAncestor reports whether candidate lies on the parent chain of idx, idx included.
func (t *rrtTree) isAncestor(candidate, idx int) bool {
	for cur := idx; cur != rootSentinel; cur = t.vertices[cur].parent {
		if cur == candidate {
			return true
		}
	}
	return false
}
