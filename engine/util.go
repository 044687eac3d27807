package engine

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// Abs returns the absolute value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts f to the inclusive range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// ratio is (own-opp)/max(own+opp, floor), the normalisation every
// evaluation term shares.
func ratio[T number](own, opp T, floor float64) float64 {
	total := float64(own) + float64(opp)
	if total < floor {
		total = floor
	}
	return (float64(own) - float64(opp)) / total
}
