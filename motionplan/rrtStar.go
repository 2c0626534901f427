// Package motionplan is a sampling-based path planning library for 2D occupancy grids.
package motionplan

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/utils"

	"github.com/oxbotics/gridplan/costmap"
)

// Path extraction inserts a waypoint roughly every this many world units along each
// tree edge.
const pathStepResolution = 0.1

// MotionPlanner provides an interface to path planning methods, providing ways to
// request a path to be planned between two stamped poses.
type MotionPlanner interface {
	// Plan will take a context, a start and a goal pose and return a waypoint path
	// which should be followed in order to arrive at the goal. An empty path with a
	// nil error means the request was rejected before planning began.
	Plan(ctx context.Context, start, goal PoseStamped) (*Path, error)
}

type planReturn struct {
	path *Path
	err  error
}

// rrtStarPlanner grows a tree of vertices rooted at the start, rewiring new vertices
// toward cheaper parents within a shrinking connection radius. Note that only a newly
// inserted vertex's own parent link is ever reconsidered by default; pre-existing
// vertices keep their parents even when the new vertex would shorten their route. Set
// PlannerOptions.RewireNeighbors for the canonical two-directional behavior.
type rrtStarPlanner struct {
	cm       *costmap.Costmap
	opts     *PlannerOptions
	logger   golog.Logger
	clock    clock.Clock
	randseed *rand.Rand
}

// NewRRTStarPlanner creates a planner over the given costmap, seeded from the options.
func NewRRTStarPlanner(cm *costmap.Costmap, opts *PlannerOptions, logger golog.Logger) (MotionPlanner, error) {
	//nolint:gosec
	return NewRRTStarPlannerWithSeed(cm, opts, rand.New(rand.NewSource(opts.RandomSeed)), logger)
}

// NewRRTStarPlannerWithSeed creates a planner with a user specified random source.
func NewRRTStarPlannerWithSeed(
	cm *costmap.Costmap,
	opts *PlannerOptions,
	seed *rand.Rand,
	logger golog.Logger,
) (MotionPlanner, error) {
	if cm == nil {
		return nil, errors.New("cannot create planner without a costmap")
	}
	if opts == nil {
		opts = NewBasicPlannerOptions("map")
	}
	return &rrtStarPlanner{
		cm:       cm,
		opts:     opts,
		logger:   logger,
		clock:    clock.New(),
		randseed: seed,
	}, nil
}

func (mp *rrtStarPlanner) Plan(ctx context.Context, start, goal PoseStamped) (*Path, error) {
	solutionChan := make(chan *planReturn, 1)
	utils.PanicCapturingGo(func() {
		mp.planRunner(ctx, start, goal, solutionChan)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case plan := <-solutionChan:
		return plan.path, plan.err
	}
}

// planRunner will execute the plan. When Plan() is called, it will call planRunner in a
// separate thread and wait for the results, so that callers can be unblocked by context
// cancellation even while the tree is still growing.
func (mp *rrtStarPlanner) planRunner(ctx context.Context, start, goal PoseStamped, solutionChan chan *planReturn) {
	defer close(solutionChan)

	path := &Path{
		Frame: mp.opts.GlobalFrame,
		Stamp: mp.clock.Now(),
		Poses: []r3.Vector{},
	}

	if start.Frame != mp.opts.GlobalFrame {
		mp.logger.Errorf("planner will only accept start position from %s frame, got %s", mp.opts.GlobalFrame, start.Frame)
		solutionChan <- &planReturn{path: path}
		return
	}
	if goal.Frame != mp.opts.GlobalFrame {
		mp.logger.Infof("planner will only accept goal position from %s frame, got %s", mp.opts.GlobalFrame, goal.Frame)
		solutionChan <- &planReturn{path: path}
		return
	}

	startPos := r3.Vector{X: start.Pose.X, Y: start.Pose.Y}
	goalPos := r3.Vector{X: goal.Pose.X, Y: goal.Pose.Y}

	// scans the whole grid, once per call
	gamma := calculateBallRadiusConstant(mp.cm, mp.opts.GoalRegionRadius)

	tree := newRRTTree(mp.opts.PlanIter)
	tree.addRoot(startPos)

	smpl := newSampler(mp.cm, goalPos, mp.opts.GoalSampleWindow, mp.opts.GoalBiasCadence, mp.randseed)

	for i := 1; i < mp.opts.PlanIter; i++ {
		select {
		case <-ctx.Done():
			solutionChan <- &planReturn{err: ctx.Err()}
			return
		default:
		}
		mp.extend(tree, smpl, gamma, i)
	}
	mp.logger.Debugf("RRT* tree built with %d vertices", tree.size())

	goalIdx, err := mp.connectGoal(tree, goalPos, gamma)
	if err != nil {
		solutionChan <- &planReturn{err: err}
		return
	}

	path.Poses = smoothPath(extractPath(tree, goalIdx))
	mp.logger.Debugf("path found: %d waypoints, length %.3f", len(path.Poses), path.Length())
	solutionChan <- &planReturn{path: path}
}

// extend draws samples until one connects to its nearest tree vertex, then inserts it
// and rewires its parent link among the vertices inside the current connection radius.
// The iteration is forfeited once the resample budget runs out, so maps with little
// reachable free space cannot starve the planner.
func (mp *rrtStarPlanner) extend(tree *rrtTree, smpl *sampler, gamma float64, iteration int) {
	for attempt := 0; attempt < mp.opts.ResampleBudget; attempt++ {
		candidate := smpl.sample(iteration)
		nearest := tree.nearestNeighbor(candidate)
		nearestPos := tree.vertices[nearest].pos
		if !connectible(mp.cm, nearestPos, candidate, mp.opts.InterpolationResolution) {
			continue
		}

		// the radius shrinks as the tree grows, per the RRT* schedule
		radius := calculateBallRadius(gamma, tree.size(), planningDimensions, mp.opts.MaxConnectionDistance)
		neighbors := tree.verticesWithinRadius(candidate, radius)
		newIdx := tree.add(candidate, nearestPos.Distance(candidate), nearest)
		mp.rewire(tree, newIdx, neighbors)
		return
	}
}

// rewire attempts to re-parent the newly inserted vertex to whichever neighbor yields
// the cheapest route from the root; each improving swap tightens the bound used for the
// remaining neighbors. When RewireNeighbors is set, a second pass also routes existing
// neighbors through the new vertex where that is cheaper.
func (mp *rrtStarPlanner) rewire(tree *rrtTree, newIdx int, neighbors []int) {
	newPos := tree.vertices[newIdx].pos
	newCost := tree.costFromRoot(newIdx)
	for _, nbr := range neighbors {
		nbrPos := tree.vertices[nbr].pos
		potential := tree.costFromRoot(nbr) + newPos.Distance(nbrPos)
		if potential < newCost && connectible(mp.cm, newPos, nbrPos, mp.opts.InterpolationResolution) {
			tree.setParent(newIdx, nbr, newPos.Distance(nbrPos))
			newCost = potential
		}
	}

	if !mp.opts.RewireNeighbors {
		return
	}
	newCost = tree.costFromRoot(newIdx)
	for _, nbr := range neighbors {
		nbrPos := tree.vertices[nbr].pos
		dist := newPos.Distance(nbrPos)
		// the ancestor check keeps the parent graph acyclic even across zero-length edges
		if newCost+dist < tree.costFromRoot(nbr) &&
			!tree.isAncestor(nbr, newIdx) &&
			connectible(mp.cm, newPos, nbrPos, mp.opts.InterpolationResolution) {
			tree.setParent(nbr, newIdx, dist)
		}
	}
}

// connectGoal searches the vertices near the goal for the cheapest connectible parent
// and attaches the goal to the tree. Each failed attempt doubles the search radius; the
// attempt count is bounded so an unreachable goal yields a no-path error rather than an
// endless search.
func (mp *rrtStarPlanner) connectGoal(tree *rrtTree, goal r3.Vector, gamma float64) (int, error) {
	radius := 2 * calculateBallRadius(gamma, tree.size(), planningDimensions, mp.opts.MaxConnectionDistance)
	if radius <= 0 {
		radius = mp.opts.MaxConnectionDistance
	}

	for attempt := 0; attempt < mp.opts.GoalAttempts; attempt++ {
		candidates := tree.verticesWithinRadius(goal, radius)
		bestParent := rootSentinel
		minCost := math.Inf(1)
		for _, idx := range candidates {
			vertexPos := tree.vertices[idx].pos
			potential := tree.costFromRoot(idx) + goal.Distance(vertexPos)
			if potential < minCost && connectible(mp.cm, goal, vertexPos, mp.opts.InterpolationResolution) {
				bestParent = idx
				minCost = potential
			}
		}
		if bestParent != rootSentinel && minCost < goalCostThreshold {
			return tree.add(goal, goal.Distance(tree.vertices[bestParent].pos), bestParent), nil
		}
		mp.logger.Debugf("no goal connection within radius %.3f, widening", radius)
		radius *= 2
	}
	return rootSentinel, NewPlannerFailedError()
}

// extractPath walks the parent chain from the goal vertex to the root, densifying each
// edge with intermediate waypoints, and returns the sequence in start-to-goal order.
func extractPath(tree *rrtTree, goalIdx int) []r3.Vector {
	path := make([]r3.Vector, 0)
	for cur := goalIdx; cur != rootSentinel; cur = tree.vertices[cur].parent {
		pos := tree.vertices[cur].pos
		path = append(path, pos)

		parent := tree.vertices[cur].parent
		if parent == rootSentinel {
			continue
		}
		parentPos := tree.vertices[parent].pos
		steps := math.Ceil(math.Hypot(parentPos.X-pos.X, parentPos.Y-pos.Y) / pathStepResolution)
		if steps > 0 {
			xIncrement := (parentPos.X - pos.X) / steps
			yIncrement := (parentPos.Y - pos.Y) / steps
			x, y := pos.X, pos.Y
			for i := 0; i < int(steps)-1; i++ {
				x += xIncrement
				y += yIncrement
				path = append(path, r3.Vector{X: x, Y: y})
			}
		}
	}

	// reverse the slice
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
