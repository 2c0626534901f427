package motionplan

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/oxbotics/gridplan/costmap"
)

// sampler draws candidate points uniformly from the grid's world bounds, switching to a
// fixed window about the goal on a regular cadence to bias the tree toward it. It keeps
// no state between draws beyond the shared random source.
type sampler struct {
	minX, maxX float64
	minY, maxY float64
	goal       r3.Vector
	window     float64
	cadence    int
	randseed   *rand.Rand
}

func newSampler(cm *costmap.Costmap, goal r3.Vector, window float64, cadence int, randseed *rand.Rand) *sampler {
	return &sampler{
		minX:     cm.OriginX(),
		maxX:     cm.MaxX(),
		minY:     cm.OriginY(),
		maxY:     cm.MaxY(),
		goal:     goal,
		window:   window,
		cadence:  cadence,
		randseed: randseed,
	}
}

// sample returns a candidate point for the given iteration number.
func (s *sampler) sample(iteration int) r3.Vector {
	if s.cadence > 0 && iteration%s.cadence == 0 {
		return r3.Vector{
			X: s.uniform(s.goal.X-s.window, s.goal.X+s.window),
			Y: s.uniform(s.goal.Y-s.window, s.goal.Y+s.window),
		}
	}
	return r3.Vector{
		X: s.uniform(s.minX, s.maxX),
		Y: s.uniform(s.minY, s.maxY),
	}
}

func (s *sampler) uniform(min, max float64) float64 {
	return min + s.randseed.Float64()*(max-min)
}
