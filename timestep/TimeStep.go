// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes the reason an episode ended. Until an episode ends,
// its timesteps carry the EndType Nil.
type EndType int

const (
	// Nil indicates a timestep which does not end its episode
	Nil EndType = iota

	// TerminalStateReached indicates that the episode ended because
	// the agent reached a terminal (goal) state
	TerminalStateReached

	// Timeout indicates that the episode ended because the per-episode
	// step budget was exhausted
	Timeout

	// OutOfBounds indicates that the episode ended because some state
	// feature left its legal interval
	OutOfBounds

	// Collision indicates that the episode ended because the agent
	// collided with an obstacle
	Collision
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	case OutOfBounds:
		return "OutOfBounds"
	case Collision:
		return "Collision"
	default:
		return "Nil"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	endType     EndType
}

// New returns a new TimeStep with EndType Nil
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{t, r, d, o, n, Nil}
}

// SetEnd records why the episode containing this timestep ended. It is
// usually called by an environment.Ender together with setting the
// StepType to Last.
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason the episode ended at this timestep, or
// Nil if the timestep does not end its episode.
func (t TimeStep) EndType() EndType {
	return t.endType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
