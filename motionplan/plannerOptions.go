package motionplan

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// default values for planning options.
const (
	// Collision checks step along a segment every this many world units.
	defaultInterpolationResolution = 0.01

	// Number of planner iterations, counting the root vertex.
	defaultPlanIter = 1000

	// Hard cap on the shrinking connection radius.
	defaultMaxConnectionDistance = 2.0

	// Every this many iterations, sample near the goal instead of the whole map.
	defaultGoalBiasCadence = 5

	// Half-width of the goal-biased sampling window, in world units.
	defaultGoalSampleWindow = 5.0

	// Assumed goal-region radius used to cap the ball-radius constant.
	defaultGoalRegionRadius = 10.0

	// How many times a single iteration may redraw a sample whose nearest-neighbor
	// connection is blocked before the iteration is forfeited.
	defaultResampleBudget = 100

	// How many times the goal-connection search may double its radius before planning
	// fails with a no-path error.
	defaultGoalAttempts = 4

	// Goal connections costlier than this are treated as unusable.
	goalCostThreshold = 10000.
)

// PlannerOptions configures a single planner. All values are pre-set to reasonable
// defaults but can be tweaked if needed.
type PlannerOptions struct {
	// Frame identifier that start and goal poses must carry.
	GlobalFrame string `json:"global_frame"`

	// Step size of the straight-line collision check, in world units.
	InterpolationResolution float64 `json:"interpolation_resolution"`

	// Number of sampling iterations per planning call, counting the root.
	PlanIter int `json:"plan_iter"`

	// Hard cap on the shrinking connection radius.
	MaxConnectionDistance float64 `json:"max_connection_distance"`

	// Sample near the goal every this many iterations; zero disables goal bias.
	GoalBiasCadence int `json:"goal_bias_cadence"`

	// Half-width of the goal-biased sampling window.
	GoalSampleWindow float64 `json:"goal_sample_window"`

	// Assumed goal-region radius capping the ball-radius constant.
	GoalRegionRadius float64 `json:"goal_region_radius"`

	// Redraw budget per iteration for samples with a blocked nearest connection.
	ResampleBudget int `json:"resample_budget"`

	// Widening attempts for the goal-connection search before giving up.
	GoalAttempts int `json:"goal_attempts"`

	// When true, a second rewire pass also re-parents existing neighbors through a
	// newly inserted vertex when that offers a cheaper route, as in canonical RRT*.
	// Off by default: the stock behavior only ever re-parents the new vertex.
	RewireNeighbors bool `json:"rewire_neighbors"`

	// Seed for the planner's random source.
	RandomSeed int64 `json:"random_seed"`
}

// NewBasicPlannerOptions specifies a set of default planner options.
func NewBasicPlannerOptions(globalFrame string) *PlannerOptions {
	return &PlannerOptions{
		GlobalFrame:             globalFrame,
		InterpolationResolution: defaultInterpolationResolution,
		PlanIter:                defaultPlanIter,
		MaxConnectionDistance:   defaultMaxConnectionDistance,
		GoalBiasCadence:         defaultGoalBiasCadence,
		GoalSampleWindow:        defaultGoalSampleWindow,
		GoalRegionRadius:        defaultGoalRegionRadius,
		ResampleBudget:          defaultResampleBudget,
		GoalAttempts:            defaultGoalAttempts,
		RandomSeed:              1,
	}
}

// NewPlannerOptionsFromExtra overlays an untyped option map, as supplied by host
// configuration, onto a default option set.
func NewPlannerOptionsFromExtra(globalFrame string, extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions(globalFrame)
	// convert map to json
	jsonString, err := json.Marshal(extra)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal planner options")
	}
	if err := json.Unmarshal(jsonString, opt); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal planner options")
	}
	return opt, nil
}
