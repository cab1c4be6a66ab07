package content

import "math"

// RepeatsKind discriminates the three count specifications.
type RepeatsKind uint8

const (
	// RepeatsExactly is a fixed integer count.
	RepeatsExactly RepeatsKind = iota
	// RepeatsJust is an expected real count: the integral part is
	// guaranteed, the fractional part is the chance of one more.
	RepeatsJust
	// RepeatsBetween samples uniformly in [Lo, Hi) and then applies
	// the RepeatsJust split to the sample.
	RepeatsBetween
)

// Repeats is a count specification evaluating to an integer,
// possibly randomly.
type Repeats struct {
	Kind RepeatsKind `json:"kind"`
	N    int         `json:"n,omitempty"`
	X    float64     `json:"x,omitempty"`
	Lo   float64     `json:"lo,omitempty"`
	Hi   float64     `json:"hi,omitempty"`
}

func Exactly(n int) Repeats          { return Repeats{Kind: RepeatsExactly, N: n} }
func Just(x float64) Repeats         { return Repeats{Kind: RepeatsJust, X: x} }
func Between(lo, hi float64) Repeats { return Repeats{Kind: RepeatsBetween, Lo: lo, Hi: hi} }

// Eval turns the specification into a concrete count.
// RepeatsExactly never consumes randomness.
func (r Repeats) Eval(rng RandomSource) int {
	var x float64
	switch r.Kind {
	case RepeatsExactly:
		return r.N
	case RepeatsJust:
		x = r.X
	case RepeatsBetween:
		x = r.Lo + (r.Hi-r.Lo)*rng.Float64()
	}
	whole := math.Floor(x)
	n := int(whole)
	if rng.Float64() < x-whole {
		n++
	}
	return n
}

// NoOp reports whether the specification is pointless to author:
// repeating exactly once, or a range with identical bounds.
func (r Repeats) NoOp() bool {
	switch r.Kind {
	case RepeatsExactly:
		return r.N == 1
	case RepeatsJust:
		return r.X == 1
	case RepeatsBetween:
		return r.Lo == r.Hi
	}
	return false
}
