package environment

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/ralfroemer99/diffusion-planning/timestep"
)

// TestIntervalLimitBoundary checks that the ender fires exactly at
// the interval endpoints, not only beyond them
func TestIntervalLimitBoundary(t *testing.T) {
	limits := []r1.Interval{{Min: -4.9999, Max: 4.9999}}
	indices := []int{0}

	tests := []struct {
		value float64
		done  bool
	}{
		{0.0, false},
		{4.9998, false},
		{4.9999, true},
		{5.0, true},
		{-4.9998, false},
		{-4.9999, true},
		{-5.0, true},
	}

	for _, test := range tests {
		ender := NewIntervalLimit(limits, indices,
			timestep.OutOfBounds)
		obs := mat.NewVecDense(2, []float64{test.value, 0.0})
		step := timestep.New(timestep.Mid, 0, 1, obs, 1)

		if done := ender.End(&step); done != test.done {
			t.Errorf("value %v: got done %v, want %v", test.value, done,
				test.done)
		}
		if test.done && step.EndType() != timestep.OutOfBounds {
			t.Errorf("value %v: got end type %v, want %v", test.value,
				step.EndType(), timestep.OutOfBounds)
		}
	}
}
