package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Wrap maps i onto [0, n) so ring neighbours can be looked up with i+1 or i-1.
func Wrap[T constraints.Integer](i, n T) T {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
