package planar

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ralfroemer99/diffusion-planning/environment"
)

const (
	// targetClearance is the minimum separation between a target and
	// the boundary of any static obstacle
	targetClearance float64 = 0.2

	// startClearance is the minimum separation between a starting
	// position and the boundary of any obstacle
	startClearance float64 = 1.0

	// maxSampleAttempts bounds every rejection-sampling loop. The
	// loops terminate quickly for any sane configuration; the bound
	// exists so that an unsatisfiable configuration fails loudly
	// instead of blocking forever.
	maxSampleAttempts int = 100000
)

// Sampler draws valid starting states and target positions for a
// planar environment by rejection sampling: candidates are drawn
// uniformly and retried until they satisfy the separation and
// clearance predicates. Sampler implements environment.Starter.
type Sampler struct {
	dyn    Dynamics
	field  *Field        // may be nil
	target *mat.VecDense // shared with the owning Env, mutated in place

	epsilon float64
	test    bool

	stateStarter environment.UniformStarter
	unit         distuv.Uniform
}

// newSampler returns a Sampler drawing from the state space of dyn.
// The target argument is the live target vector of the owning
// environment; the sampler reads it when validating starting states.
// All draws come from rng, so reseeding rng reseeds the sampler.
func newSampler(dyn Dynamics, field *Field, target *mat.VecDense,
	epsilon float64, test bool, rng *rand.Rand) *Sampler {
	return &Sampler{
		dyn:     dyn,
		field:   field,
		target:  target,
		epsilon: epsilon,
		test:    test,
		stateStarter: environment.NewUniformStarterFrom(dyn.StateBounds(),
			rng),
		unit: distuv.Uniform{Min: 0, Max: 1, Src: rng},
	}
}

// Start draws a starting state uniformly from the state-space box and
// retries until the state is valid: its position is more than epsilon
// away from the target and clear of every obstacle, and any
// model-specific start constraints hold. Start panics if no valid
// state is found within the attempt budget.
func (s *Sampler) Start() *mat.VecDense {
	tester, isTester := s.dyn.(TestStarter)
	validator, isValidator := s.dyn.(StartValidator)

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		state := s.stateStarter.Start()

		if s.test && isTester {
			tester.PrepareTestStart(state)
		}

		if !s.validStartPosition(state) {
			continue
		}
		if isValidator && !validator.ValidStart(state) {
			continue
		}
		if s.test && isTester && !tester.ValidTestStart(state) {
			continue
		}
		return state
	}
	panic(fmt.Sprintf("start: no valid starting state found after %v "+
		"attempts", maxSampleAttempts))
}

// validStartPosition checks the generic position constraints of a
// candidate starting state
func (s *Sampler) validStartPosition(state *mat.VecDense) bool {
	x, y := state.AtVec(0), state.AtVec(2)

	if s.target != nil {
		dx := x - s.target.AtVec(0)
		dy := y - s.target.AtVec(1)
		if dx*dx+dy*dy <= s.epsilon*s.epsilon {
			return false
		}
	}
	if s.field != nil && s.field.CollidesWithin(x, y, startClearance) {
		return false
	}
	return true
}

// SampleTarget draws a target position uniformly over the position
// domain and retries until it is more than epsilon away from the
// argument position (when non-nil) and clear of every static
// obstacle. SampleTarget panics if no valid target is found within
// the attempt budget.
func (s *Sampler) SampleTarget(position *mat.VecDense) *mat.VecDense {
	bounds := s.dyn.StateBounds()
	xMax, yMax := bounds[0].Max, bounds[2].Max

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		x := 2 * xMax * (s.unit.Rand() - 0.5)
		y := 2 * yMax * (s.unit.Rand() - 0.5)

		if position != nil {
			dx := position.AtVec(0) - x
			dy := position.AtVec(2) - y
			if dx*dx+dy*dy <= s.epsilon*s.epsilon {
				continue
			}
		}
		if s.field != nil && s.field.StaticContains(x, y, targetClearance) {
			continue
		}
		return mat.NewVecDense(2, []float64{x, y})
	}
	panic(fmt.Sprintf("sampleTarget: no valid target found after %v "+
		"attempts", maxSampleAttempts))
}
