package planar

import (
	"gonum.org/v1/gonum/mat"
)

// derivFn computes the time derivative of an action-augmented state
// vector.
type derivFn func(*mat.VecDense) []float64

// rk4Step integrates an n-dimensional system of ODEs over [0, dt]
// using a single step of classical 4th-order Runge-Kutta. The action
// is held constant across the whole interval (zero-order hold): y0 is
// the state augmented with the action, whose components the derivative
// function reports as constant (derivative zero). Only the leading
// stateDims components of the result are returned; the trailing action
// components are discarded.
//
// Adapted from OpenAI Gym Acrobot:
// https://github.com/openai/gym/blob/7c9ae6d14087fe50714d59bc36b1797560
// 961710/gym/envs/classic_control/acrobot.py
func rk4Step(derivs derivFn, y0 *mat.VecDense, dt float64,
	stateDims int) *mat.VecDense {
	dt2 := dt / 2.0

	dsdt := derivs(y0)
	k1 := mat.NewVecDense(len(dsdt), dsdt)

	input := mat.NewVecDense(k1.Len(), nil)
	input.AddScaledVec(y0, dt2, k1)
	dsdt = derivs(input)
	k2 := mat.NewVecDense(len(dsdt), dsdt)

	input.AddScaledVec(y0, dt2, k2)
	dsdt = derivs(input)
	k3 := mat.NewVecDense(len(dsdt), dsdt)

	input.AddScaledVec(y0, dt, k3)
	dsdt = derivs(input)
	k4 := mat.NewVecDense(len(dsdt), dsdt)

	out := mat.NewVecDense(k1.Len(), nil)
	out.CopyVec(k1)
	out.AddScaledVec(out, 2.0, k2)
	out.AddScaledVec(out, 2.0, k3)
	out.AddVec(out, k4)
	out.AddScaledVec(y0, dt/6.0, out)

	return out.SliceVec(0, stateDims).(*mat.VecDense)
}
