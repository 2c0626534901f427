package motionplan

import "errors"

var errPlannerFailed = errors.New("motion planner failed to find path")

// NewPlannerFailedError returns the error produced when no path to the goal exists
// within the planner's search budget.
func NewPlannerFailedError() error {
	return errPlannerFailed
}

// IsPlannerFailedError reports whether err indicates that no path was found.
func IsPlannerFailedError(err error) bool {
	return errors.Is(err, errPlannerFailed)
}
