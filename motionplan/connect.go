package motionplan

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/oxbotics/gridplan/costmap"
)

// connectible reports whether the straight segment from start to end crosses only free
// cells. The segment is discretized into ceil(distance/resolution) steps walked from
// start toward end; a point outside the grid counts as blocked. Coincident points are
// trivially connectible. The walk direction is canonically first argument to second;
// results can differ across directions only at floating-point cell boundaries.
func connectible(cm *costmap.Costmap, start, end r3.Vector, resolution float64) bool {
	steps := math.Ceil(math.Hypot(end.X-start.X, end.Y-start.Y) / resolution)
	if steps > 0 {
		xIncrement := (end.X - start.X) / steps
		yIncrement := (end.Y - start.Y) / steps

		x, y := start.X, start.Y
		for i := 0; i < int(steps); i++ {
			mx, my, ok := cm.WorldToMap(x, y)
			if !ok {
				return false
			}
			if cm.GetCost(mx, my) != costmap.FreeSpace {
				return false
			}
			x += xIncrement
			y += yIncrement
		}
	}
	return true
}
