package predict

import (
	"math"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// #region errors
// ErrInvalidDistribution means the weights handed to the predictor cannot be
// sampled: a negative or non-finite weight, a zero total, or a slot count
// that is not a multiple of three.
var ErrInvalidDistribution = errors.New("invalid distribution")

// #endregion errors

// #region source
// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// #endregion source

// #region prediction
// Prediction is the sampled guess of the opponent's next move and the
// computer's answer to it.
type Prediction struct {
	Predicted     game.Move
	Counter       game.Move
	Probabilities [game.NumMoves]float64
}

// #endregion prediction

// #region predictor
// Predictor samples the opponent's next move and plays its counter.
type Predictor struct {
	src Source
}

// NewPredictor creates a predictor drawing from src.
func NewPredictor(src Source) *Predictor {
	return &Predictor{src: src}
}

// Predict collapses weights to one probability per move, samples a predicted
// opponent move from it and returns the counter to that move. Exactly one
// draw is taken from the source per call.
func (p *Predictor) Predict(weights []float64) (Prediction, error) {
	probs, err := Collapse(weights)
	if err != nil {
		return Prediction{}, err
	}
	predicted := sample(probs, p.src.Float64())
	return Prediction{
		Predicted:     predicted,
		Counter:       game.CounterTo(predicted),
		Probabilities: probs,
	}, nil
}

// #endregion predictor

// #region collapse
// Collapse sums every slot into the move it covers (slot i covers move i%3)
// and validates the result.
func Collapse(weights []float64) ([game.NumMoves]float64, error) {
	var probs [game.NumMoves]float64
	if len(weights) == 0 || len(weights)%game.NumMoves != 0 {
		return probs, errors.Wrapf(ErrInvalidDistribution, "%d slots", len(weights))
	}
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return probs, errors.Wrapf(ErrInvalidDistribution, "slot %d weight %v", i, w)
		}
		probs[i%game.NumMoves] += w
		total += w
	}
	if total <= 0 {
		return probs, errors.Wrap(ErrInvalidDistribution, "zero total weight")
	}
	return probs, nil
}

// #endregion collapse

// #region sample
// sample walks the cumulative weights with draw r in [0, 1), scaled by the
// total so small renormalization drift cannot push r past the last bucket.
func sample(probs [game.NumMoves]float64, r float64) game.Move {
	var total float64
	for _, p := range probs {
		total += p
	}
	target := r * total

	last := game.Rock
	var cum float64
	for i, p := range probs {
		if p == 0 {
			continue
		}
		last = game.Move(i)
		cum += p
		if target < cum {
			return last
		}
	}
	return last
}

// #endregion sample
