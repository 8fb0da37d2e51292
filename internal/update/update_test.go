package update

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func uniform(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

func TestReinforceFirstRound(t *testing.T) {
	result := Reinforce(uniform(3), 0, FirstOrderConfig())

	want := []float64{0.34, 0.33, 0.33}
	for i := range want {
		if math.Abs(result.Weights[i]-want[i]) > 1e-12 {
			t.Fatalf("slot %d: expected %.12f, got %.12f", i, want[i], result.Weights[i])
		}
	}
	if math.Abs(result.Metrics.RawSum-1.0) > 1e-12 {
		t.Fatalf("expected raw sum 1.0, got %.15f", result.Metrics.RawSum)
	}
	if result.Metrics.Slot != 0 {
		t.Fatalf("expected slot 0, got %d", result.Metrics.Slot)
	}
}

func TestReinforceDoesNotMutateInput(t *testing.T) {
	in := uniform(3)
	Reinforce(in, 1, FirstOrderConfig())
	for i, w := range in {
		if w != 1.0/3.0 {
			t.Fatalf("input mutated at %d: %f", i, w)
		}
	}
}

func TestReinforceSumsToOne(t *testing.T) {
	configs := []Config{FirstOrderConfig(), ResultConditionedConfig()}
	for _, cfg := range configs {
		for _, n := range []int{3, 6} {
			w := uniform(n)
			for round := 0; round < 200; round++ {
				w = Reinforce(w, round%n, cfg).Weights
				if math.Abs(floats.Sum(w)-1.0) > 1e-6 {
					t.Fatalf("n=%d round %d: sum %.12f", n, round, floats.Sum(w))
				}
			}
		}
	}
}

func TestReinforceMonotoneAndOpenInterval(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		slot   int
		config Config
		rounds int
	}{
		{"first-order", 3, 2, FirstOrderConfig(), 500},
		{"result-conditioned", 6, 4, ResultConditionedConfig(), 300},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := uniform(c.n)
			for round := 0; round < c.rounds; round++ {
				next := Reinforce(w, c.slot, c.config).Weights
				for i := range next {
					if i == c.slot && !(next[i] > w[i]) {
						t.Fatalf("round %d: target did not increase: %v -> %v", round, w[i], next[i])
					}
					if i != c.slot && !(next[i] < w[i]) {
						t.Fatalf("round %d: slot %d did not decrease: %v -> %v", round, i, w[i], next[i])
					}
					if next[i] <= 0 || next[i] >= 1 {
						t.Fatalf("round %d: slot %d left (0,1): %v", round, i, next[i])
					}
				}
				w = next
			}
		})
	}
}

func TestReinforceDeterministic(t *testing.T) {
	a := Reinforce(uniform(6), 3, ResultConditionedConfig())
	b := Reinforce(uniform(6), 3, ResultConditionedConfig())
	for i := range a.Weights {
		if a.Weights[i] != b.Weights[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestConfigsAreDistinct(t *testing.T) {
	fo, rc := FirstOrderConfig(), ResultConditionedConfig()
	if fo.LearningRate != 0.02 || fo.DecayRate != 0.01 {
		t.Fatalf("unexpected first-order config %+v", fo)
	}
	if rc.LearningRate != 0.05 || rc.DecayRate != 0.01 {
		t.Fatalf("unexpected result-conditioned config %+v", rc)
	}
}
