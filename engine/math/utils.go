package math

import "golang.org/x/exp/constraints"

// Number is any scalar a Rect can be built over.
type Number interface {
	constraints.Integer | constraints.Float
}

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

func abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
