package environment

import (
	"gonum.org/v1/gonum/mat"
)

// FixedStarter starts every episode from the same state. It is used
// for paired, non-random evaluation where an environment is
// constructed with a fixed initial state and a fixed target.
type FixedStarter struct {
	state *mat.VecDense
}

// NewFixedStarter returns a Starter which always starts episodes from
// state
func NewFixedStarter(state *mat.VecDense) FixedStarter {
	return FixedStarter{state}
}

// Start returns a copy of the fixed starting state
func (f FixedStarter) Start() *mat.VecDense {
	out := mat.NewVecDense(f.state.Len(), nil)
	out.CopyVec(f.state)
	return out
}
