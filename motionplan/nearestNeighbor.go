package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// nearestNeighbor returns the index of the tree vertex closest to target, with ties
// broken in favor of the earliest-inserted vertex. A linear scan is sufficient here:
// collision checking dominates planning cost at the tree sizes the iteration budget
// allows, so a spatial index would not pay for itself.
func (t *rrtTree) nearestNeighbor(target r3.Vector) int {
	best := rootSentinel
	bestDist := math.Inf(1)
	for i := range t.vertices {
		if dist := t.vertices[i].pos.Distance(target); dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// verticesWithinRadius returns the indices of all vertices within radius of center.
func (t *rrtTree) verticesWithinRadius(center r3.Vector, radius float64) []int {
	inside := make([]int, 0)
	radiusSquared := radius * radius
	for i := range t.vertices {
		diff := t.vertices[i].pos.Sub(center)
		if diff.Norm2() <= radiusSquared {
			inside = append(inside, i)
		}
	}
	return inside
}
