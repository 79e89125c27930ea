package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly from a box of
// per-feature intervals
type UniformStarter struct {
	features int
	rand     *distmv.Uniform
}

// NewUniformStarter returns a UniformStarter which samples each
// feature uniformly from the corresponding interval in bounds
func NewUniformStarter(bounds []r1.Interval, seed uint64) UniformStarter {
	return NewUniformStarterFrom(bounds, rand.NewSource(seed))
}

// NewUniformStarterFrom is like NewUniformStarter but draws from an
// existing source, so that the starter can share a source with other
// consumers and be reseeded through it
func NewUniformStarterFrom(bounds []r1.Interval,
	src rand.Source) UniformStarter {
	return UniformStarter{len(bounds), distmv.NewUniform(bounds, src)}
}

// Start samples and returns a new starting state
func (u UniformStarter) Start() *mat.VecDense {
	return mat.NewVecDense(u.features, u.rand.Rand(nil))
}
