package update

import "gonum.org/v1/gonum/floats"

// #region reinforce
// Reinforce is a pure function that shifts weights toward slot. The slot
// gains weight*LearningRate, every other slot loses weight*DecayRate, then
// all slots are divided once by the fresh sum. The input slice is not
// modified. slot must index into weights.
func Reinforce(weights []float64, slot int, config Config) Result {
	next := make([]float64, len(weights))
	copy(next, weights)

	var gain, decay float64
	for i, w := range next {
		if i == slot {
			d := w * config.LearningRate
			next[i] += d
			gain += d
			continue
		}
		d := w * config.DecayRate
		next[i] -= d
		decay += d
	}

	sum := floats.Sum(next)
	if sum > 0 {
		for i := range next {
			next[i] /= sum
		}
	}

	return Result{
		Weights: next,
		Metrics: Metrics{
			Slot:     slot,
			Gain:     gain,
			DecayAbs: decay,
			RawSum:   sum,
		},
	}
}

// #endregion reinforce
