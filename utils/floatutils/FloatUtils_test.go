package floatutils

import (
	"math"
	"testing"
)

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, -1, 1, 0.5},
		{-3, -1, 1, -1},
		{3, -1, 1, 1},
		{1, -1, 1, 1},
		{-1, -1, 1, -1},
	}

	for _, test := range tests {
		if got := Clip(test.value, test.min, test.max); got != test.want {
			t.Errorf("Clip(%v, %v, %v) = %v, want %v", test.value,
				test.min, test.max, got, test.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		value, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi, -math.Pi},
		{math.Pi, -math.Pi},        // upper bound is exclusive
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
	}

	for _, test := range tests {
		got := Wrap(test.value, -math.Pi, math.Pi)
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Wrap(%v) = %v, want %v", test.value, got, test.want)
		}
	}
}

// Wrap must map inputs many range-widths outside the interval back in
// without depending on the iterative path.
func TestWrapFarOutside(t *testing.T) {
	for _, value := range []float64{100 * math.Pi, -100.5 * math.Pi, 1e6} {
		got := Wrap(value, -math.Pi, math.Pi)
		if got < -math.Pi || got >= math.Pi {
			t.Errorf("Wrap(%v) = %v, outside [-π, π)", value, got)
		}
	}
}
