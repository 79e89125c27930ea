package planar

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/ralfroemer99/diffusion-planning/environment"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
)

const (
	// SuccessBonus is added to the reward on steps where the body is
	// within epsilon of the target, when the bonus is enabled
	SuccessBonus float64 = 1000.0

	// oobMargin is how far inside a clamp bound a state component may
	// sit before it counts as out of bounds. Clamped components
	// saturate exactly at the bound, which always lies outside this
	// margin.
	oobMargin float64 = 1e-4
)

// ReachTarget implements the task of steering the body to within
// epsilon of a target position. Rewards are the negative (squared)
// Euclidean distance from the body position to the target on every
// step, with an optional fixed bonus once within epsilon.
//
// Episodes end, in priority order: when the body reaches the target
// (if enabled), when a clamped state component saturates at its bound
// (if enabled), when the body collides with an obstacle, or when the
// per-episode step budget runs out. The budget termination is always
// active.
type ReachTarget struct {
	environment.Starter

	epsilon float64
	squared bool
	bonus   bool
	maxDist float64

	goalEnder      environment.Ender // nil unless enabled
	boundsEnder    environment.Ender // nil unless enabled
	collisionEnder environment.Ender // nil without obstacles
	stepLimit      environment.Ender
}

// newReachTarget assembles the task for a dynamics model and config.
// All enders operate on observation vectors, which carry the body
// position at indices 0 and 2 and the target in the trailing two
// components.
func newReachTarget(starter environment.Starter, field *Field, dyn Dynamics,
	c Config) *ReachTarget {
	bounds := dyn.StateBounds()
	maxDist := math.Hypot(2*bounds[0].Max, 2*bounds[2].Max)

	task := &ReachTarget{
		Starter:   starter,
		epsilon:   c.Epsilon,
		squared:   c.Reward == SquaredDistance,
		bonus:     c.BonusReward,
		maxDist:   maxDist,
		stepLimit: environment.NewStepLimit(c.MaxSteps),
	}

	if c.ResetTargetReached {
		epsilon := c.Epsilon
		task.goalEnder = environment.NewFunctionEnder(
			func(obs *mat.VecDense) bool {
				return obsDistance(obs) <= epsilon
			}, ts.TerminalStateReached)
	}

	if c.ResetOutOfBounds {
		indices, intervals := dyn.OutOfBoundsIndices(c.ThetaAsSineCosine,
			c.Test)
		limits := make([]r1.Interval, len(intervals))
		for i, interval := range intervals {
			limits[i] = r1.Interval{
				Min: interval.Min + oobMargin,
				Max: interval.Max - oobMargin,
			}
		}
		task.boundsEnder = environment.NewIntervalLimit(limits, indices,
			ts.OutOfBounds)
	}

	if field != nil {
		task.collisionEnder = environment.NewFunctionEnder(
			func(obs *mat.VecDense) bool {
				return field.Collides(obs.AtVec(0), obs.AtVec(2))
			}, ts.Collision)
	}

	return task
}

// obsDistance returns the Euclidean distance between the body position
// and the target stored in an observation vector
func obsDistance(obs mat.Vector) float64 {
	n := obs.Len()
	dx := obs.AtVec(0) - obs.AtVec(n-2)
	dy := obs.AtVec(2) - obs.AtVec(n-1)
	return math.Hypot(dx, dy)
}

// GetReward returns the reward for arriving in nextState. The state
// and action arguments are unused: the reward depends only on the
// distance between the new body position and the target.
func (r *ReachTarget) GetReward(_, _, nextState mat.Vector) float64 {
	distance := obsDistance(nextState)

	var reward float64
	if r.squared {
		reward = -distance * distance
	} else {
		reward = -distance
	}

	if distance <= r.epsilon && r.bonus {
		reward += SuccessBonus
	}
	return reward
}

// AtGoal returns whether the argument observation describes a body
// within epsilon of the target
func (r *ReachTarget) AtGoal(state mat.Matrix) bool {
	rows, cols := state.Dims()
	if cols != 1 {
		panic("atGoal: state must be a single column vector")
	}

	dx := state.At(0, 0) - state.At(rows-2, 0)
	dy := state.At(2, 0) - state.At(rows-1, 0)
	return math.Hypot(dx, dy) <= r.epsilon
}

// End determines if a timestep is the last in its episode, checking
// the termination causes in priority order: target reached, out of
// bounds, collision, step budget. If the episode ends, the timestep's
// StepType is set to timestep.Last and its EndType records the cause.
func (r *ReachTarget) End(t *ts.TimeStep) bool {
	if r.goalEnder != nil && r.goalEnder.End(t) {
		return true
	}
	if r.boundsEnder != nil && r.boundsEnder.End(t) {
		return true
	}
	if r.collisionEnder != nil && r.collisionEnder.End(t) {
		return true
	}
	return r.stepLimit.End(t)
}

// Min returns the minimum attainable reward over all timesteps
func (r *ReachTarget) Min() float64 {
	if r.squared {
		return -r.maxDist * r.maxDist
	}
	return -r.maxDist
}

// Max returns the maximum attainable reward over all timesteps
func (r *ReachTarget) Max() float64 {
	if r.bonus {
		return SuccessBonus
	}
	return 0.0
}

// RewardSpec returns the reward specification of the task
func (r *ReachTarget) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{r.Min()})
	upperBound := mat.NewVecDense(1, []float64{r.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}
