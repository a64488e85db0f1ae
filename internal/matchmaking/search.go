package matchmaking

import "math"

// expansion is a widening, greedy search shared by team building and match
// building. Each pass scans the candidates once in their current order and
// commits every one whose score lies strictly within tolerance of the
// accumulator's center; the tolerance doubles between passes.
type expansion[T any] struct {
	candidates func() []T
	score      func(T) float64
	eligible   func(T) bool
	center     func() float64
	// commit adds a candidate to the accumulator and reports whether it is now full.
	commit func(T) bool
	full   func() bool
}

// run searches from tolerance until the accumulator is full or tolerance
// reaches bound. It returns the outcome and the tolerance it stopped at.
func (e expansion[T]) run(tolerance, bound float64) (bool, float64) {
	for {
		if e.full() {
			return true, tolerance
		}
		// A non-positive or NaN tolerance would never widen.
		if !(tolerance > 0) || tolerance >= bound {
			return false, tolerance
		}
		center := e.center()
		for _, c := range e.candidates() {
			if e.eligible != nil && !e.eligible(c) {
				continue
			}
			if math.Abs(e.score(c)-center) >= tolerance {
				continue
			}
			if e.commit(c) {
				return true, tolerance
			}
			center = e.center()
		}
		tolerance *= 2
	}
}

// initialTolerance is aggressiveness relative to the seed score.
func initialTolerance(aggressiveness, seedScore float64) float64 {
	if seedScore <= 0 {
		return aggressiveness
	}
	return aggressiveness / seedScore
}
