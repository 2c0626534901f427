package motionplan

import (
	"math"

	"github.com/oxbotics/gridplan/costmap"
)

// planningDimensions is the dimensionality of the planning space.
const planningDimensions = 2

// calculateBallRadiusConstant computes the RRT* gamma constant from the free area of
// the grid: gamma = 2*(1+1/d)*(A/pi)^(1/d) for d=2. The result is capped at
// goalRegionRadius, trading asymptotic optimality guarantees for bounded rewire cost on
// large open maps. Scans every cell, so it runs once per planning call.
func calculateBallRadiusConstant(cm *costmap.Costmap, goalRegionRadius float64) float64 {
	resolution := cm.Resolution()
	cellArea := resolution * resolution
	numFreeCells := 0
	for x := uint(0); x < cm.SizeInCellsX(); x++ {
		for y := uint(0); y < cm.SizeInCellsY(); y++ {
			if cm.GetCost(x, y) == costmap.FreeSpace {
				numFreeCells++
			}
		}
	}
	freeArea := cellArea * float64(numFreeCells)
	gamma := 2.0 * (1 + 1.0/planningDimensions) * math.Pow(freeArea/math.Pi, 1.0/planningDimensions)
	return math.Min(gamma, goalRegionRadius)
}

// calculateBallRadius returns the shrinking RRT* connection radius
// min((gamma*ln(n)/n)^(1/d), maxConnectionDistance) for a tree of size n. The radius is
// non-increasing in n; trees of one or fewer vertices get a radius of zero since ln is
// not usable there.
func calculateBallRadius(gamma float64, treeSize, dimensions int, maxConnectionDistance float64) float64 {
	if treeSize <= 1 {
		return 0
	}
	n := float64(treeSize)
	term := gamma * math.Log(n) / n
	return math.Min(math.Pow(term, 1.0/float64(dimensions)), maxConnectionDistance)
}
