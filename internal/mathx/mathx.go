// Package mathx holds the small numeric helpers shared by the simulation:
// intervals, a seeded generator, 1D noise and clamping.
package mathx

import "math"

// Lerp performs linear interpolation between a and b with t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Wrap folds v into [lo, hi) by whole multiples of the span.
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	r := math.Mod(v-lo, span)
	if r < 0 {
		r += span
	}
	if r >= span {
		r = 0
	}
	return lo + r
}
