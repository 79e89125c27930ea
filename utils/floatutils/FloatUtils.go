// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// wrapIters bounds the iterative wrap loop. Inputs overflowing the
// range by more than this many widths fall back to modular reduction.
const wrapIters = 4

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max.
// If min exceeds the floating point, then the function returns the min.
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Wrap wraps a periodic quantity back into [min, max) by adding or
// subtracting the range width. Unlike Clip, which saturates at a
// boundary, Wrap treats the interval as a circle: for example with
// min = -180 and max = 180 (degrees), x = 360 wraps to 0.
//
// A single integration step overflows the range by at most a fraction
// of its width, so the loop almost always runs zero or one iteration.
func Wrap(x, min, max float64) float64 {
	width := max - min

	for i := 0; x >= max && i < wrapIters; i++ {
		x -= width
	}
	for i := 0; x < min && i < wrapIters; i++ {
		x += width
	}

	if x >= max || x < min {
		x = math.Mod(x-min, width)
		if x < 0 {
			x += width
		}
		x += min
	}
	return x
}

// WrapInterval is a wrapper to use Wrap with an r1.Interval instead of
// a separate max and min value
func WrapInterval(value float64, interval r1.Interval) float64 {
	return Wrap(value, interval.Min, interval.Max)
}

// Min calculates and returns the minimum float64 in a list
func Min(floats ...float64) float64 {
	min := floats[0]
	for _, val := range floats {
		if val < min {
			min = val
		}
	}
	return min
}

// Max calculates and returns the maximum float64 in a list
func Max(floats ...float64) float64 {
	max := floats[0]
	for _, val := range floats {
		if val > max {
			max = val
		}
	}
	return max
}
