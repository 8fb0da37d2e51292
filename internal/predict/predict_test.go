package predict

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// #region helpers
// fixedSource replays a fixed sequence of draws.
type fixedSource struct {
	draws []float64
	calls int
}

func (f *fixedSource) Float64() float64 {
	v := f.draws[f.calls%len(f.draws)]
	f.calls++
	return v
}

func third() []float64 {
	return []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
}

// #endregion helpers

// #region predict-tests
func TestPredictBuckets(t *testing.T) {
	cases := []struct {
		draw      float64
		predicted game.Move
	}{
		{0.0, game.Rock},
		{0.33, game.Rock},
		{0.34, game.Paper},
		{0.66, game.Paper},
		{0.67, game.Scissors},
		{0.999999, game.Scissors},
	}
	for _, c := range cases {
		src := &fixedSource{draws: []float64{c.draw}}
		p, err := NewPredictor(src).Predict(third())
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if p.Predicted != c.predicted {
			t.Errorf("draw %.6f: expected %v, got %v", c.draw, c.predicted, p.Predicted)
		}
		if p.Counter != game.CounterTo(c.predicted) {
			t.Errorf("draw %.6f: counter %v does not beat %v", c.draw, p.Counter, c.predicted)
		}
	}
}

func TestPredictSingleDrawPerCall(t *testing.T) {
	src := &fixedSource{draws: []float64{0.1, 0.5, 0.9}}
	pred := NewPredictor(src)
	for i := 0; i < 3; i++ {
		if _, err := pred.Predict(third()); err != nil {
			t.Fatalf("Predict: %v", err)
		}
	}
	if src.calls != 3 {
		t.Fatalf("expected 3 draws, got %d", src.calls)
	}
}

func TestPredictSkipsZeroWeights(t *testing.T) {
	src := &fixedSource{draws: []float64{0.999999}}
	p, err := NewPredictor(src).Predict([]float64{0, 1, 0})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if p.Predicted != game.Paper {
		t.Fatalf("expected Paper, got %v", p.Predicted)
	}
}

func TestPredictFollowsWeights(t *testing.T) {
	pred := NewPredictor(rand.New(rand.NewSource(7)))
	weights := []float64{0.7, 0.2, 0.1}
	counts := map[game.Move]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		p, err := pred.Predict(weights)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		counts[p.Predicted]++
	}
	for i, w := range weights {
		got := float64(counts[game.Move(i)]) / n
		if math.Abs(got-w) > 0.02 {
			t.Errorf("move %v: expected frequency ~%.2f, got %.3f", game.Move(i), w, got)
		}
	}
}

// #endregion predict-tests

// #region collapse-tests
func TestCollapseSixSlots(t *testing.T) {
	weights := []float64{0.1, 0.2, 0.05, 0.3, 0.15, 0.2}
	probs, err := Collapse(weights)
	if err != nil {
		t.Fatalf("Collapse: %v", err)
	}
	want := [3]float64{0.4, 0.35, 0.25}
	var sum float64
	for i := range want {
		if math.Abs(probs[i]-want[i]) > 1e-12 {
			t.Errorf("move %d: expected %f, got %f", i, want[i], probs[i])
		}
		sum += probs[i]
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("collapsed vector sums to %f", sum)
	}
}

func TestCollapseInvalid(t *testing.T) {
	cases := map[string][]float64{
		"empty":    nil,
		"negative": {0.5, 0.6, -0.1},
		"zero":     {0, 0, 0},
		"nan":      {math.NaN(), 0.5, 0.5},
		"odd":      {0.5, 0.5},
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPredictor(&fixedSource{draws: []float64{0.5}}).Predict(w)
			if !errors.Is(err, ErrInvalidDistribution) {
				t.Fatalf("expected ErrInvalidDistribution, got %v", err)
			}
		})
	}
}

// #endregion collapse-tests
