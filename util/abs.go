// Package util provides small numeric helpers shared by the eidpatt packages.
package util

import "math"

// Signed is a constraint for signed integer and float types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Abs returns the absolute value of x.
func Abs[T Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// RoundHalfUp rounds x to the nearest integer, ties toward +Inf.
// Rate quantisation and tolerance bounds use this rule, not math.Round,
// so negative ties never occur in practice but behave like floor(x+0.5).
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
