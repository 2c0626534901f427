package motionplan

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNewBasicPlannerOptions(t *testing.T) {
	opt := NewBasicPlannerOptions("map")
	test.That(t, opt.GlobalFrame, test.ShouldEqual, "map")
	test.That(t, opt.InterpolationResolution, test.ShouldEqual, 0.01)
	test.That(t, opt.PlanIter, test.ShouldEqual, 1000)
	test.That(t, opt.MaxConnectionDistance, test.ShouldEqual, 2.0)
	test.That(t, opt.GoalBiasCadence, test.ShouldEqual, 5)
	test.That(t, opt.GoalSampleWindow, test.ShouldEqual, 5.0)
	test.That(t, opt.GoalRegionRadius, test.ShouldEqual, 10.0)
	test.That(t, opt.RewireNeighbors, test.ShouldBeFalse)
}

func TestNewPlannerOptionsFromExtra(t *testing.T) {
	opt, err := NewPlannerOptionsFromExtra("map", map[string]interface{}{
		"interpolation_resolution": 0.05,
		"plan_iter":                500,
		"rewire_neighbors":         true,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opt.InterpolationResolution, test.ShouldEqual, 0.05)
	test.That(t, opt.PlanIter, test.ShouldEqual, 500)
	test.That(t, opt.RewireNeighbors, test.ShouldBeTrue)

	// untouched options keep their defaults
	test.That(t, opt.GoalBiasCadence, test.ShouldEqual, 5)
	test.That(t, opt.GlobalFrame, test.ShouldEqual, "map")
}

func TestNewPlannerOptionsFromExtraBadValues(t *testing.T) {
	_, err := NewPlannerOptionsFromExtra("map", map[string]interface{}{
		"plan_iter": math.NaN(),
	})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewPlannerOptionsFromExtra("map", map[string]interface{}{
		"plan_iter": "a lot",
	})
	test.That(t, err, test.ShouldNotBeNil)
}
