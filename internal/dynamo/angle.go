package dynamo

import "math"

const twoPi = 2 * math.Pi

// WrapAngle returns the angle equivalent to a in (-π, π].
// Non-finite input yields 0.
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, twoPi)
	if a <= 0 {
		a += twoPi
	}
	return a - math.Pi
}

// ShortestArc is the signed rotation from one angle to another, never longer
// than half a turn.
func ShortestArc(from, to float64) float64 {
	return WrapAngle(to - from)
}

// LerpAngle moves from toward to by fraction f along the shortest arc.
func LerpAngle(from, to, f float64) float64 {
	return WrapAngle(from + ShortestArc(from, to)*f)
}
