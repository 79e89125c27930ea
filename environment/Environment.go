// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments. Implementations are free to
// reject candidate draws until a valid state is found, but must not
// block forever: if no valid state can be found after a bounded
// number of attempts, Start should panic with a descriptive message.
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when and how episodes end. If the argument timestep
// is the last in its episode, End sets the timestep's StepType to
// timestep.Last, records the reason on the timestep via SetEnd, and
// returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme, the starting-state distribution,
// and the termination conditions for acting in some environment
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action from state,
	// resulting in nextState
	GetReward(state, action, nextState mat.Vector) float64

	// AtGoal returns whether the argument state is a goal state
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	Min() float64
	Max() float64

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task

	// Reset resets the environment between episodes and returns the
	// first timestep of the new episode
	Reset() timestep.TimeStep

	// Step takes one environmental step given an action, returning the
	// next timestep and whether it is the last in the episode
	Step(action *mat.VecDense) (timestep.TimeStep, bool)

	// CurrentTimeStep returns the last timestep of the environment
	CurrentTimeStep() timestep.TimeStep

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
