package planar

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/environment"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
	"github.com/ralfroemer99/diffusion-planning/utils/floatutils"
)

// Env simulates a rigid body moving through a bounded two-dimensional
// world towards a target position. The body's equations of motion are
// supplied by a Dynamics model and integrated with a classical
// fourth-order Runge-Kutta step per action; after each step every
// state component is forced back into its legal interval by the
// model's boundary rule (saturation or angular wrap-around).
//
// All randomness flows through a single source so that environments
// constructed with equal configurations produce identical episodes.
type Env struct {
	environment.Task
	dyn Dynamics
	cfg Config

	rng     *rand.Rand
	sampler *Sampler // nil when the initial state is fixed
	field   *Field   // nil without obstacles

	// state and target are mutated in place so that the sampler and
	// the task enders can hold stable references to them
	state        *mat.VecDense
	target       *mat.VecDense
	randomTarget bool

	targetReached int
	lastStep      ts.TimeStep
	discount      float64
}

// New creates a planar environment around a dynamics model. It
// returns the environment along with the first timestep of the first
// episode.
func New(dyn Dynamics, c Config) (*Env, ts.TimeStep, error) {
	if err := c.validate(dyn); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	rng := rand.New(rand.NewSource(c.Seed))

	var field *Field
	if c.obstacleCount() > 0 {
		bounds := dyn.StateBounds()
		field = NewField(c.MovingBoxes, c.StaticBoxes, c.MovingCircles,
			c.StaticCircles, bounds[0].Max, bounds[2].Max, bounds[1].Max,
			bounds[3].Max, dyn.Dt())
	}

	randomTarget := c.Target == nil
	target := mat.NewVecDense(2, nil)
	if !randomTarget {
		target.CopyVec(c.Target)
	}

	var sampler *Sampler
	var starter environment.Starter
	if c.InitialState == nil {
		sampler = newSampler(dyn, field, target, c.Epsilon, c.Test, rng)
		starter = sampler
	} else {
		starter = environment.NewFixedStarter(c.InitialState)
	}

	env := &Env{
		Task:         newReachTarget(starter, field, dyn, c),
		dyn:          dyn,
		cfg:          c,
		rng:          rng,
		sampler:      sampler,
		field:        field,
		state:        mat.NewVecDense(dyn.StateDims(), nil),
		target:       target,
		randomTarget: randomTarget,
		discount:     c.Discount,
	}

	if field != nil {
		if err := field.Generate(rng); err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
		}
	}
	if randomTarget {
		target.CopyVec(sampler.SampleTarget(nil))
	}

	firstStep := env.Reset()
	return env, firstStep, nil
}

// Reset resets the environment and returns the first timestep of the
// new episode. A fresh obstacle layout is generated, then a starting
// state is drawn against that layout and the previous target, and
// finally a new target is drawn against the new starting position.
func (e *Env) Reset() ts.TimeStep {
	if e.field != nil {
		if err := e.field.Generate(e.rng); err != nil {
			panic(fmt.Sprintf("reset: %v", err))
		}
	}

	e.state.CopyVec(e.Start())
	if e.randomTarget {
		e.target.CopyVec(e.sampler.SampleTarget(e.state))
	}
	e.targetReached = 0

	obs := e.dyn.Observe(e.state, e.target, e.cfg.ThetaAsSineCosine)
	firstStep := ts.New(ts.First, 0, e.discount, obs, 0)
	e.lastStep = firstStep
	return firstStep
}

// Step takes one environmental step given an action and returns the
// next timestep and whether it is the last in the episode. Actions
// are clipped to the model's action bounds before integration, and
// moving obstacles advance by one control interval alongside the body.
func (e *Env) Step(action *mat.VecDense) (ts.TimeStep, bool) {
	if e.lastStep.Observation == nil {
		panic("step: call Reset before stepping the environment")
	}
	if action.Len() != e.dyn.ActionDims() {
		panic(fmt.Sprintf("step: action dimension %v != %v", action.Len(),
			e.dyn.ActionDims()))
	}

	actionBounds := e.dyn.ActionBounds()
	clipped := mat.NewVecDense(action.Len(), nil)
	for i := 0; i < action.Len(); i++ {
		clipped.SetVec(i, floatutils.ClipInterval(action.AtVec(i),
			actionBounds[i]))
	}

	stateDims := e.dyn.StateDims()
	sAugmented := mat.NewVecDense(stateDims+clipped.Len(), nil)
	for i := 0; i < stateDims; i++ {
		sAugmented.SetVec(i, e.state.AtVec(i))
	}
	for i := 0; i < clipped.Len(); i++ {
		sAugmented.SetVec(stateDims+i, clipped.AtVec(i))
	}

	nextState := rk4Step(e.dyn.DsDt, sAugmented, e.dyn.Dt(), stateDims)
	applyBoundary(nextState, e.dyn.StateBounds(), e.dyn.BoundaryRules())
	e.state.CopyVec(nextState)

	if e.field != nil {
		e.field.Step()
	}

	obs := e.dyn.Observe(e.state, e.target, e.cfg.ThetaAsSineCosine)
	reward := e.GetReward(e.lastStep.Observation, clipped, obs)
	nextStep := ts.New(ts.Mid, reward, e.discount, obs, e.lastStep.Number+1)
	e.End(&nextStep)

	switch nextStep.EndType() {
	case ts.TerminalStateReached:
		e.targetReached = 1
	case ts.Collision:
		e.targetReached = -1
	}

	e.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// CurrentTimeStep returns the last timestep of the environment
func (e *Env) CurrentTimeStep() ts.TimeStep {
	return e.lastStep
}

// Seed reseeds the environment's source of randomness. The starting
// state, target, obstacle, and action distributions all share this
// source, so reseeding makes the subsequent episode sequence
// reproducible.
func (e *Env) Seed(seed uint64) {
	e.rng.Seed(seed)
}

// TargetReached reports how the current episode has resolved so far:
// 1 once the body has reached the target, -1 once it has collided
// with an obstacle, and 0 otherwise.
func (e *Env) TargetReached() int {
	return e.targetReached
}

// State returns a copy of the environment's current state vector
func (e *Env) State() *mat.VecDense {
	state := mat.NewVecDense(e.state.Len(), nil)
	state.CopyVec(e.state)
	return state
}

// Target returns a copy of the current target position
func (e *Env) Target() *mat.VecDense {
	target := mat.NewVecDense(2, nil)
	target.CopyVec(e.target)
	return target
}

// Obstacles returns a snapshot of the obstacle field, or nil if the
// environment has no obstacles
func (e *Env) Obstacles() []Obstacle {
	if e.field == nil {
		return nil
	}
	return e.field.Obstacles()
}

// PredictObstacles returns the obstacle layouts over the next horizon
// steps, starting from the current layout, without advancing the
// field. Entry i holds the layout i steps ahead.
func (e *Env) PredictObstacles(horizon int) [][]Obstacle {
	if e.field == nil {
		return nil
	}
	return e.field.Predict(horizon)
}

// SampleAction draws a random action. Models constraining random
// draws (the quadrotor's bounded thrust difference) supply their own
// sampling; otherwise the action is drawn uniformly from the action
// bounds.
func (e *Env) SampleAction() *mat.VecDense {
	if sampler, ok := e.dyn.(ActionSampler); ok {
		return sampler.SampleAction(e.rng)
	}

	bounds := e.dyn.ActionBounds()
	action := mat.NewVecDense(len(bounds), nil)
	for i, interval := range bounds {
		action.SetVec(i, interval.Min+
			e.rng.Float64()*(interval.Max-interval.Min))
	}
	return action
}

// InverseDynamics recovers the action that explains the transition
// from state to nextState in closed form. It panics if the dynamics
// model has no inverse.
func (e *Env) InverseDynamics(state, nextState mat.Vector) *mat.VecDense {
	model, ok := e.dyn.(InverseModel)
	if !ok {
		panic("inverseDynamics: dynamics model has no closed-form inverse")
	}
	return model.InverseDynamics(state, nextState)
}

// ObservationSpec returns the observation specification of the
// environment
func (e *Env) ObservationSpec() environment.Spec {
	sineCosine := e.cfg.ThetaAsSineCosine
	bounds := e.dyn.ObservationBounds(sineCosine)

	dims := e.dyn.ObservationDims(sineCosine)
	shape := mat.NewVecDense(dims, nil)
	lowerBound := mat.NewVecDense(dims, nil)
	upperBound := mat.NewVecDense(dims, nil)
	for i, interval := range bounds {
		lowerBound.SetVec(i, interval.Min)
		upperBound.SetVec(i, interval.Max)
	}

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}

// ActionSpec returns the action specification of the environment
func (e *Env) ActionSpec() environment.Spec {
	bounds := e.dyn.ActionBounds()

	dims := e.dyn.ActionDims()
	shape := mat.NewVecDense(dims, nil)
	lowerBound := mat.NewVecDense(dims, nil)
	upperBound := mat.NewVecDense(dims, nil)
	for i, interval := range bounds {
		lowerBound.SetVec(i, interval.Min)
		upperBound.SetVec(i, interval.Max)
	}

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Continuous)
}

// DiscountSpec returns the discounting specification of the
// environment
func (e *Env) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	discount := mat.NewVecDense(1, []float64{e.discount})

	return environment.NewSpec(shape, environment.Discount, discount,
		discount, environment.Continuous)
}
