package randvar

import (
	"math"
	"testing"
)

// scripted returns fixed Float64 values in order, cycling.
type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *scripted) Intn(n int) int { return 0 }

func TestExponentialInverseCDF(t *testing.T) {
	src := &scripted{vals: []float64{0.5}}
	got := Exponential(src, 2.0)
	want := -math.Log(0.5) / 2.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Exponential = %v, want %v", got, want)
	}
}

func TestWeightedIndexProportional(t *testing.T) {
	weights := []float64{0, 1, 3}
	cases := []struct {
		u    float64
		want int
	}{
		{0.0, 1},   // zero-weight entries are skipped
		{0.2, 1},   // 0.8 of total 4 still inside weight 1
		{0.26, 2},  // past the first weight
		{0.99, 2},
	}
	for _, c := range cases {
		src := &scripted{vals: []float64{c.u}}
		if got := WeightedIndex(src, weights); got != c.want {
			t.Errorf("WeightedIndex(u=%v) = %d, want %d", c.u, got, c.want)
		}
	}
}

func TestWeightedIndexZeroTotal(t *testing.T) {
	src := &scripted{vals: []float64{0.5}}
	if got := WeightedIndex(src, []float64{0, 0, 0}); got != -1 {
		t.Fatalf("WeightedIndex on zero weights = %d, want -1", got)
	}
}

func TestNewDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}
