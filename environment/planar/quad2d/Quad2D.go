// Package quad2d implements a planar quadrotor environment. The body
// is actuated by two rotor thrusts acting perpendicular to its frame,
// and the task is to fly it to within epsilon of a target position,
// optionally through a field of static and moving obstacles.
package quad2d

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
)

const (
	// Dt is the control interval in seconds
	Dt float64 = 0.05

	// Physical parameters of the quadrotor: its mass, the effective
	// moment arm of the propellers, and gravitational acceleration
	Mass    float64 = 0.1
	Length  float64 = 0.1
	Gravity float64 = 9.81

	// MaxX and MaxY bound the position, MaxVelX and MaxVelY the
	// velocity along each axis. The orientation lives in
	// [-MaxAng, MaxAng) and wraps around; the angular rate is clamped
	// to ±MaxVelAng.
	MaxX      float64 = 5.0
	MaxY      float64 = 5.0
	MaxAng    float64 = math.Pi
	MaxVelX   float64 = 5.0
	MaxVelY   float64 = 5.0
	MaxVelAng float64 = 5.0

	// MinRelThrust and MaxRelThrust bound each rotor's thrust as a
	// fraction of the per-rotor hover thrust mg/2. MaxRelThrustDiff
	// bounds the thrust difference of randomly sampled actions as a
	// fraction of the total hover thrust mg.
	MinRelThrust     float64 = 0.75
	MaxRelThrust     float64 = 1.25
	MaxRelThrustDiff float64 = 0.01

	stateDims  int = 6
	actionDims int = 2
)

// Dynamics implements the planar quadrotor equations of motion. The
// state is [x, ẋ, y, ẏ, θ, θ̇] and the action is the pair of rotor
// thrusts [T₁, T₂].
type Dynamics struct {
	minThrust     float64
	maxThrust     float64
	maxThrustDiff float64
	inertia       float64
}

// NewDynamics returns the quadrotor dynamics model with thrust limits
// derived from the hover thrust
func NewDynamics() Dynamics {
	return Dynamics{
		minThrust:     MinRelThrust * Mass * Gravity / 2,
		maxThrust:     MaxRelThrust * Mass * Gravity / 2,
		maxThrustDiff: MaxRelThrustDiff * Mass * Gravity,
		inertia:       Mass * Length * Length / 12,
	}
}

// New creates a planar quadrotor environment with the argument
// configuration and returns it along with the first timestep of the
// first episode
func New(c planar.Config) (*planar.Env, ts.TimeStep, error) {
	if c.Reward == planar.DefaultReward {
		c.Reward = planar.SquaredDistance
	}
	return planar.New(NewDynamics(), c)
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
		{Min: -MaxAng, Max: MaxAng},
		{Min: -MaxVelAng, Max: MaxVelAng},
	}
}

func (d Dynamics) ActionBounds() []r1.Interval {
	return []r1.Interval{
		{Min: d.minThrust, Max: d.maxThrust},
		{Min: d.minThrust, Max: d.maxThrust},
	}
}

func (Dynamics) BoundaryRules() []planar.BoundaryRule {
	return []planar.BoundaryRule{planar.Clamp, planar.Clamp, planar.Clamp,
		planar.Clamp, planar.Wrap, planar.Clamp}
}

// DsDt returns the time derivative of a state augmented with the
// current thrust pair. The thrust sum accelerates the body along its
// frame normal and the thrust difference produces a torque around its
// centre; the trailing action components have derivative zero.
func (d Dynamics) DsDt(sAugmented *mat.VecDense) []float64 {
	a1 := sAugmented.AtVec(6)
	a2 := sAugmented.AtVec(7)
	dx := sAugmented.AtVec(1)
	dy := sAugmented.AtVec(3)
	theta := sAugmented.AtVec(4)
	dtheta := sAugmented.AtVec(5)

	ddx := -(a1 + a2) * math.Sin(theta) / Mass
	ddy := (a1+a2)*math.Cos(theta)/Mass - Gravity
	ddtheta := Length * (a1 - a2) / d.inertia

	return []float64{dx, ddx, dy, ddy, dtheta, ddtheta, 0.0, 0.0}
}

// InverseDynamics recovers the thrust pair explaining the transition
// from state to nextState. The accelerations are finite-differenced
// over one control interval, the thrust sum follows from the
// translational dynamics and the thrust difference from the
// rotational dynamics.
func (d Dynamics) InverseDynamics(state, nextState mat.Vector) *mat.VecDense {
	ddx := (nextState.AtVec(1) - state.AtVec(1)) / Dt
	ddy := (nextState.AtVec(3) - state.AtVec(3)) / Dt
	ddtheta := (nextState.AtVec(5) - state.AtVec(5)) / Dt

	sum := Mass * math.Sqrt(ddx*ddx+(ddy+Gravity)*(ddy+Gravity))
	diff := d.inertia * ddtheta / Length

	return mat.NewVecDense(2, []float64{(sum + diff) / 2, (sum - diff) / 2})
}

// SampleAction draws a random thrust pair whose difference is bounded
// by the maximum thrust difference: the second thrust is redrawn
// around the first until it falls within the actuator limits.
func (d Dynamics) SampleAction(rng *rand.Rand) *mat.VecDense {
	span := d.maxThrust - d.minThrust
	a1 := d.minThrust + rng.Float64()*span

	a2 := a1 + (2*rng.Float64()-1)*d.maxThrustDiff
	for a2 < d.minThrust || a2 > d.maxThrust {
		a2 = a1 + (2*rng.Float64()-1)*d.maxThrustDiff
	}

	return mat.NewVecDense(2, []float64{a1, a2})
}

// ValidStart rejects starting states from which full thrust cannot
// brake the body to a stop before it leaves the position domain
func (d Dynamics) ValidStart(state *mat.VecDense) bool {
	maxAcc := (2*d.maxThrust - Mass*Gravity) / Mass

	x, dx := state.AtVec(0), state.AtVec(1)
	y, dy := state.AtVec(2), state.AtVec(3)

	if dx > 0 && x+0.5*dx*dx/maxAcc > MaxX {
		return false
	}
	if dx < 0 && x-0.5*dx*dx/maxAcc < -MaxX {
		return false
	}
	if dy > 0 && y+0.5*dy*dy/maxAcc > MaxY {
		return false
	}
	if dy < 0 && y-0.5*dy*dy/maxAcc < -MaxY {
		return false
	}
	return true
}

// PrepareTestStart zeroes the velocities, orientation, and angular
// rate of a candidate start so that paired evaluations begin from
// hover
func (Dynamics) PrepareTestStart(state *mat.VecDense) {
	state.SetVec(1, 0)
	state.SetVec(3, 0)
	state.SetVec(4, 0)
	state.SetVec(5, 0)
}

// ValidTestStart rejects test-mode starts that are tilted beyond a
// quarter turn
func (Dynamics) ValidTestStart(state *mat.VecDense) bool {
	theta := state.AtVec(4)
	return theta <= math.Pi/2 && theta >= -math.Pi/2
}

// Observe builds the observation from a state and target. With
// sineCosine the orientation is reported as (sin θ, cos θ):
// [x, ẋ, y, ẏ, sin θ, cos θ, θ̇, targetX, targetY]. Otherwise the raw
// angle is reported: [x, ẋ, y, ẏ, θ, θ̇, targetX, targetY].
func (Dynamics) Observe(state, target *mat.VecDense,
	sineCosine bool) *mat.VecDense {
	if sineCosine {
		return mat.NewVecDense(9, []float64{
			state.AtVec(0),
			state.AtVec(1),
			state.AtVec(2),
			state.AtVec(3),
			math.Sin(state.AtVec(4)),
			math.Cos(state.AtVec(4)),
			state.AtVec(5),
			target.AtVec(0),
			target.AtVec(1),
		})
	}
	return mat.NewVecDense(8, []float64{
		state.AtVec(0),
		state.AtVec(1),
		state.AtVec(2),
		state.AtVec(3),
		state.AtVec(4),
		state.AtVec(5),
		target.AtVec(0),
		target.AtVec(1),
	})
}

func (Dynamics) ObservationDims(sineCosine bool) int {
	if sineCosine {
		return 9
	}
	return 8
}

func (Dynamics) ObservationBounds(sineCosine bool) []r1.Interval {
	positionBounds := []r1.Interval{
		{Min: -MaxX, Max: MaxX},
		{Min: -MaxVelX, Max: MaxVelX},
		{Min: -MaxY, Max: MaxY},
		{Min: -MaxVelY, Max: MaxVelY},
	}
	targetBounds := []r1.Interval{
		{Min: -MaxX, Max: MaxX},
		{Min: -MaxY, Max: MaxY},
	}

	var bounds []r1.Interval
	if sineCosine {
		bounds = append(positionBounds,
			r1.Interval{Min: -1, Max: 1},
			r1.Interval{Min: -1, Max: 1},
			r1.Interval{Min: -MaxVelAng, Max: MaxVelAng},
		)
	} else {
		bounds = append(positionBounds,
			r1.Interval{Min: -MaxAng, Max: MaxAng},
			r1.Interval{Min: -MaxVelAng, Max: MaxVelAng},
		)
	}
	return append(bounds, targetBounds...)
}

// OutOfBoundsIndices reports the clamped components for the
// out-of-bounds termination check. The wrapped orientation is never
// inspected; in test mode only the positions are.
func (Dynamics) OutOfBoundsIndices(sineCosine,
	test bool) ([]int, []r1.Interval) {
	positionBounds := []r1.Interval{
		{Min: -MaxX, Max: MaxX},
		{Min: -MaxVelX, Max: MaxVelX},
		{Min: -MaxY, Max: MaxY},
		{Min: -MaxVelY, Max: MaxVelY},
	}

	if test {
		return []int{0, 2}, []r1.Interval{positionBounds[0],
			positionBounds[2]}
	}

	bounds := append(positionBounds,
		r1.Interval{Min: -MaxVelAng, Max: MaxVelAng})
	if sineCosine {
		return []int{0, 1, 2, 3, 6}, bounds
	}
	return []int{0, 1, 2, 3, 5}, bounds
}
