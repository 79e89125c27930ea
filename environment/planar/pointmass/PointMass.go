// Package pointmass implements a planar point mass environment. The
// body is a unit mass accelerated directly along each axis, and the
// task is to drive it to within epsilon of a target position.
package pointmass

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
)

const (
	// Dt is the control interval in seconds
	Dt float64 = 0.1

	// Mass is the mass of the body in kg
	Mass float64 = 1.0

	// MaxX and MaxY bound the position, MaxVelX and MaxVelY the
	// velocity along each axis. The legal intervals are symmetric
	// about zero.
	MaxX    float64 = 5.0
	MaxY    float64 = 5.0
	MaxVelX float64 = 5.0
	MaxVelY float64 = 5.0

	// MaxAcc bounds the commanded acceleration along each axis
	MaxAcc float64 = 5.0

	stateDims  int = 4
	actionDims int = 2
)

// Dynamics implements the point mass equations of motion. The state
// is [x, ẋ, y, ẏ] and the action is the commanded acceleration
// [ẍ, ÿ]; every state component is clamped to its bounds after
// integration.
type Dynamics struct{}

// New creates a point mass environment with the argument
// configuration and returns it along with the first timestep of the
// first episode
func New(c planar.Config) (*planar.Env, ts.TimeStep, error) {
	if c.Reward == planar.DefaultReward {
		c.Reward = planar.Distance
	}
	return planar.New(Dynamics{}, c)
}

func (Dynamics) StateDims() int {
	return stateDims
}

func (Dynamics) ActionDims() int {
	return actionDims
}

func (Dynamics) Dt() float64 {
	return Dt
}

func (Dynamics) StateBounds() []r1.Interval {
	return []r1.Interval{
		{Min: -MaxX, Max: MaxX},
		{Min: -MaxVelX, Max: MaxVelX},
		{Min: -MaxY, Max: MaxY},
		{Min: -MaxVelY, Max: MaxVelY},
	}
}

func (Dynamics) ActionBounds() []r1.Interval {
	return []r1.Interval{
		{Min: -MaxAcc, Max: MaxAcc},
		{Min: -MaxAcc, Max: MaxAcc},
	}
}

func (Dynamics) BoundaryRules() []planar.BoundaryRule {
	return []planar.BoundaryRule{planar.Clamp, planar.Clamp, planar.Clamp,
		planar.Clamp}
}

// DsDt returns the time derivative of a state augmented with the
// current acceleration command. The trailing action components have
// derivative zero.
func (Dynamics) DsDt(sAugmented *mat.VecDense) []float64 {
	a1 := sAugmented.AtVec(4)
	a2 := sAugmented.AtVec(5)
	dx := sAugmented.AtVec(1)
	dy := sAugmented.AtVec(3)

	ddx := a1 / Mass
	ddy := a2 / Mass

	return []float64{dx, ddx, dy, ddy, 0.0, 0.0}
}

// InverseDynamics recovers the acceleration command explaining the
// transition from state to nextState by finite-differencing the
// velocities over one control interval.
func (Dynamics) InverseDynamics(state, nextState mat.Vector) *mat.VecDense {
	ddx := (nextState.AtVec(1) - state.AtVec(1)) / Dt
	ddy := (nextState.AtVec(3) - state.AtVec(3)) / Dt

	return mat.NewVecDense(2, []float64{ddx / Mass, ddy / Mass})
}

// Observe returns the observation [x, ẋ, y, ẏ, targetX, targetY].
// The point mass has no orientation, so the sineCosine flag is
// ignored.
func (Dynamics) Observe(state, target *mat.VecDense,
	_ bool) *mat.VecDense {
	return mat.NewVecDense(6, []float64{
		state.AtVec(0),
		state.AtVec(1),
		state.AtVec(2),
		state.AtVec(3),
		target.AtVec(0),
		target.AtVec(1),
	})
}

func (Dynamics) ObservationDims(_ bool) int {
	return 6
}

func (d Dynamics) ObservationBounds(_ bool) []r1.Interval {
	return append(d.StateBounds(), r1.Interval{Min: -MaxX, Max: MaxX},
		r1.Interval{Min: -MaxY, Max: MaxY})
}

// OutOfBoundsIndices reports every state component for the
// out-of-bounds termination check, or only the positions in test mode
func (d Dynamics) OutOfBoundsIndices(_, test bool) ([]int, []r1.Interval) {
	bounds := d.StateBounds()
	if test {
		return []int{0, 2}, []r1.Interval{bounds[0], bounds[2]}
	}
	return []int{0, 1, 2, 3}, bounds
}
