package content_test

import (
	"testing"

	"github.com/steadling/farmcore/internal/content"
)

// scriptRNG replays a fixed sequence of floats, cycling at the end.
type scriptRNG struct {
	vals []float64
	i    int
}

func (s *scriptRNG) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestExactlyNeverRolls(t *testing.T) {
	reps := content.Exactly(3)
	rng := &scriptRNG{vals: []float64{0.99}}
	for i := 0; i < 10; i++ {
		if got := reps.Eval(rng); got != 3 {
			t.Fatalf("Exactly(3) gave %d", got)
		}
	}
	if rng.i != 0 {
		t.Fatalf("Exactly consumed %d random values; wants none", rng.i)
	}
}

func TestJustIntegral(t *testing.T) {
	reps := content.Just(4)
	if got := reps.Eval(content.NewSeededRNG(7)); got != 4 {
		t.Fatalf("Just(4) gave %d", got)
	}
}

func TestJustFractionalExtra(t *testing.T) {
	reps := content.Just(2.5)
	if got := reps.Eval(&scriptRNG{vals: []float64{0.49}}); got != 3 {
		t.Fatalf("roll under the fraction should round up; got %d", got)
	}
	if got := reps.Eval(&scriptRNG{vals: []float64{0.51}}); got != 2 {
		t.Fatalf("roll over the fraction should round down; got %d", got)
	}
}

func TestJustConvergesOnMean(t *testing.T) {
	const n = 100000
	reps := content.Just(2.5)
	rng := content.NewSeededRNG(42)
	total := 0
	for i := 0; i < n; i++ {
		total += reps.Eval(rng)
	}
	mean := float64(total) / float64(n)
	if diff := mean - 2.5; diff > 0.01 || diff < -0.01 {
		t.Fatalf("mean=%f not close to 2.5", mean)
	}
}

func TestBetweenStaysInBounds(t *testing.T) {
	reps := content.Between(2, 5)
	rng := content.NewSeededRNG(1)
	for i := 0; i < 10000; i++ {
		got := reps.Eval(rng)
		if got < 2 || got > 5 {
			t.Fatalf("Between(2, 5) gave %d", got)
		}
	}
}

func TestNoOp(t *testing.T) {
	cases := []struct {
		reps content.Repeats
		want bool
	}{
		{content.Exactly(1), true},
		{content.Exactly(2), false},
		{content.Just(1), true},
		{content.Just(1.5), false},
		{content.Between(3, 3), true},
		{content.Between(2, 3), false},
	}
	for _, c := range cases {
		if got := c.reps.NoOp(); got != c.want {
			t.Fatalf("NoOp(%+v)=%v, want %v", c.reps, got, c.want)
		}
	}
}
