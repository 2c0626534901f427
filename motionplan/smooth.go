package motionplan

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// bezierSamplesPerWindow is the number of parameter values sampled per window,
// covering t = 0, 0.05, ..., 1.0.
const bezierSamplesPerWindow = 21

// smoothPath applies sliding-window cubic Bezier smoothing to a waypoint sequence.
// Each window takes four consecutive waypoints as control points and samples the curve
// they define; windows overlap, so the output contains near-duplicate points at window
// boundaries, which is harmless for path following. The first and last input waypoints
// are preserved verbatim. Paths of fewer than four points are returned unchanged.
func smoothPath(path []r3.Vector) []r3.Vector {
	if len(path) < 4 {
		return path
	}

	ts := floats.Span(make([]float64, bezierSamplesPerWindow), 0, 1)

	smoothed := make([]r3.Vector, 0, (len(path)-3)*bezierSamplesPerWindow+2)
	smoothed = append(smoothed, path[0])
	for i := 1; i < len(path)-2; i++ {
		p0, p1, p2, p3 := path[i-1], path[i], path[i+1], path[i+2]
		for _, t := range ts {
			smoothed = append(smoothed, computeBezierPoint(p0, p1, p2, p3, t))
		}
	}
	return append(smoothed, path[len(path)-1])
}

// computeBezierPoint evaluates the cubic Bezier curve with control points p0..p3 at
// parameter t, componentwise in x and y with z fixed at zero.
func computeBezierPoint(p0, p1, p2, p3 r3.Vector, t float64) r3.Vector {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return r3.Vector{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}
