package motionplan

import (
	"time"

	"github.com/golang/geo/r3"
)

// PoseStamped is a planar position tagged with the coordinate frame it is expressed in.
type PoseStamped struct {
	Frame string
	Pose  r3.Vector
}

// Path is an ordered start-to-goal waypoint sequence. Frame and Stamp apply to the
// sequence as a whole; every pose has Z fixed at zero.
type Path struct {
	Frame string
	Stamp time.Time
	Poses []r3.Vector
}

// Length returns the summed Euclidean length of the path's segments.
func (p *Path) Length() float64 {
	total := 0.
	for i := 1; i < len(p.Poses); i++ {
		total += p.Poses[i].Distance(p.Poses[i-1])
	}
	return total
}
