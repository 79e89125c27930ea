// Package planar implements continuous-time, continuous-action
// environments in which a controllable rigid body moves through a
// bounded two-dimensional world towards a target position, optionally
// avoiding static and moving obstacles.
//
// The package provides the shared simulation machinery: a fixed-step
// Runge-Kutta integrator, per-component boundary policies, the
// obstacle field, constrained start/target sampling, and the episode
// state machine. Concrete rigid bodies (a point mass and a planar
// quadrotor) live in the pointmass and quad2d subpackages and plug in
// through the Dynamics interface.
package planar

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/ralfroemer99/diffusion-planning/utils/floatutils"
)

// BoundaryRule determines how a state component is forced back into
// its legal interval after an integration step.
type BoundaryRule int

const (
	// Clamp saturates the component at the interval boundary
	Clamp BoundaryRule = iota

	// Wrap maps a periodic component (an angle) back into its
	// principal interval [min, max)
	Wrap
)

// Dynamics describes a controllable rigid body simulated by an Env.
//
// State vectors are laid out as [x, ẋ, y, ẏ, ...]: the position
// coordinates are always at indices 0 and 2. Model-specific components
// (orientation, angular rate) follow.
type Dynamics interface {
	// StateDims and ActionDims return the lengths of state and action
	// vectors
	StateDims() int
	ActionDims() int

	// Dt returns the control interval over which each action is held
	// constant (zero-order hold)
	Dt() float64

	// StateBounds and ActionBounds return the legal interval of each
	// state and action component
	StateBounds() []r1.Interval
	ActionBounds() []r1.Interval

	// BoundaryRules returns, for each state component, whether it is
	// clamped or wrapped after integration
	BoundaryRules() []BoundaryRule

	// DsDt returns the time derivative of the argument vector, which
	// is a state augmented with the current action. The trailing
	// action components have derivative zero: they are held constant
	// through the integration interval.
	DsDt(sAugmented *mat.VecDense) []float64

	// Observe builds the agent-visible observation from a state and a
	// target position. When sineCosine is true, models with an
	// orientation report it as (sin θ, cos θ) instead of the raw
	// angle; models without an orientation ignore the flag.
	Observe(state, target *mat.VecDense, sineCosine bool) *mat.VecDense

	// ObservationDims and ObservationBounds describe the vectors
	// returned by Observe
	ObservationDims(sineCosine bool) int
	ObservationBounds(sineCosine bool) []r1.Interval

	// OutOfBoundsIndices returns the observation indices of the
	// clamped state components that the out-of-bounds termination
	// check should inspect, together with the legal interval of each.
	// In test mode only the position components are inspected.
	OutOfBoundsIndices(sineCosine, test bool) ([]int, []r1.Interval)
}

// InverseModel is implemented by Dynamics models that can recover, in
// closed form, the action explaining a transition between two
// consecutive states.
type InverseModel interface {
	InverseDynamics(state, nextState mat.Vector) *mat.VecDense
}

// ActionSampler is implemented by Dynamics models that constrain
// random action draws beyond uniform sampling within the action
// bounds.
type ActionSampler interface {
	SampleAction(rng *rand.Rand) *mat.VecDense
}

// StartValidator is implemented by Dynamics models that reject
// randomly drawn starting states, e.g. because the initial velocity
// would not permit braking to a stop before a domain wall.
type StartValidator interface {
	ValidStart(state *mat.VecDense) bool
}

// TestStarter is implemented by Dynamics models with a stricter
// paired-evaluation start mode. PrepareTestStart adjusts a candidate
// draw before validation (the quadrotor starts hovering), and
// ValidTestStart applies the extra test-mode checks.
type TestStarter interface {
	PrepareTestStart(state *mat.VecDense)
	ValidTestStart(state *mat.VecDense) bool
}

// applyBoundary forces each state component back into its legal
// interval according to the model's boundary rules.
func applyBoundary(state *mat.VecDense, bounds []r1.Interval,
	rules []BoundaryRule) {
	for i := 0; i < state.Len(); i++ {
		switch rules[i] {
		case Wrap:
			state.SetVec(i, floatutils.WrapInterval(state.AtVec(i), bounds[i]))
		default:
			state.SetVec(i, floatutils.ClipInterval(state.AtVec(i), bounds[i]))
		}
	}
}
