package motionplan

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestComputeBezierPointEndpoints(t *testing.T) {
	p0 := r3.Vector{X: -3.2, Y: 7.1}
	p1 := r3.Vector{X: 0.4, Y: -2.9}
	p2 := r3.Vector{X: 5.5, Y: 1.1}
	p3 := r3.Vector{X: 9.9, Y: -8.4}

	test.That(t, computeBezierPoint(p0, p1, p2, p3, 0), test.ShouldResemble, r3.Vector{X: p0.X, Y: p0.Y})
	test.That(t, computeBezierPoint(p0, p1, p2, p3, 1), test.ShouldResemble, r3.Vector{X: p3.X, Y: p3.Y})
}

func TestComputeBezierPointMidpoint(t *testing.T) {
	// symmetric control points put the curve midpoint on the axis of symmetry
	p0 := r3.Vector{X: 0, Y: 0}
	p1 := r3.Vector{X: 1, Y: 2}
	p2 := r3.Vector{X: 3, Y: 2}
	p3 := r3.Vector{X: 4, Y: 0}

	mid := computeBezierPoint(p0, p1, p2, p3, 0.5)
	test.That(t, mid.X, test.ShouldAlmostEqual, 2)
	test.That(t, mid.Y, test.ShouldAlmostEqual, 1.5)
	test.That(t, mid.Z, test.ShouldEqual, 0)
}

func TestSmoothPathShortPassThrough(t *testing.T) {
	for _, path := range [][]r3.Vector{
		nil,
		{},
		{{X: 1}},
		{{X: 1}, {X: 2}},
		{{X: 1}, {X: 2}, {X: 3}},
	} {
		test.That(t, smoothPath(path), test.ShouldResemble, path)
	}
}

func TestSmoothPathEndpointPreservation(t *testing.T) {
	path := []r3.Vector{
		{X: 0, Y: 0},
		{X: 1, Y: 0.5},
		{X: 2, Y: 0},
		{X: 3, Y: -0.5},
		{X: 4, Y: 0},
		{X: 5, Y: 1},
	}
	smoothed := smoothPath(path)
	test.That(t, smoothed[0], test.ShouldResemble, path[0])
	test.That(t, smoothed[len(smoothed)-1], test.ShouldResemble, path[len(path)-1])
}

func TestSmoothPathWindowCount(t *testing.T) {
	path := make([]r3.Vector, 10)
	for i := range path {
		path[i] = r3.Vector{X: float64(i), Y: float64(i % 2)}
	}
	smoothed := smoothPath(path)

	// one 21-sample window per interior position, plus the preserved endpoints
	test.That(t, smoothed, test.ShouldHaveLength, (len(path)-3)*bezierSamplesPerWindow+2)
}

func TestSmoothPathOverlappingWindows(t *testing.T) {
	path := make([]r3.Vector, 8)
	for i := range path {
		path[i] = r3.Vector{X: float64(i)}
	}
	smoothed := smoothPath(path)

	// consecutive windows overlap, so boundary samples sit close together rather than
	// advancing monotonically
	maxStep := 0.
	for i := 1; i < len(smoothed); i++ {
		if step := smoothed[i].Distance(smoothed[i-1]); step > maxStep {
			maxStep = step
		}
	}
	test.That(t, maxStep, test.ShouldBeLessThan, 2.5)

	// every window's first sample equals its P0 control point
	test.That(t, smoothed[1], test.ShouldResemble, path[0])
	test.That(t, smoothed[1+bezierSamplesPerWindow], test.ShouldResemble, path[1])
}

func TestSmoothPathZStaysZero(t *testing.T) {
	path := []r3.Vector{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 0},
	}
	for _, p := range smoothPath(path) {
		test.That(t, p.Z, test.ShouldEqual, 0)
	}
}
