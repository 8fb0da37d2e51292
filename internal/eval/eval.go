package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// #region check
// Check validates a proposed distribution before it is committed: the
// weights must sum to one within tolerance and every weight must be finite
// and non-negative. A slot that has converged to exactly 1 (or decayed to 0)
// in float64 is still a valid distribution.
func Check(weights []float64, config Config) Result {
	var metrics []Metric
	var failReasons []string

	if len(weights) == 0 {
		return Result{Passed: false, Reason: "eval failed: empty distribution"}
	}

	// 1. Sum
	sum := floats.Sum(weights)
	sumPass := math.Abs(sum-1.0) <= config.SumTolerance
	metrics = append(metrics, Metric{Name: "sum", Value: sum, Pass: sumPass})
	if !sumPass {
		failReasons = append(failReasons, fmt.Sprintf("sum %.9f outside 1±%g", sum, config.SumTolerance))
	}

	// 2. Bounds
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			failReasons = append(failReasons, fmt.Sprintf("slot %d weight %.9f not a probability", i, w))
		}
	}
	lo, hi := floats.Min(weights), floats.Max(weights)
	metrics = append(metrics,
		Metric{Name: "min_weight", Value: lo, Pass: lo >= 0},
		Metric{Name: "max_weight", Value: hi, Pass: hi <= 1+config.SumTolerance},
	)

	// 3. Entropy, informational only
	metrics = append(metrics, Metric{Name: "entropy", Value: entropy(weights), Pass: true})

	if len(failReasons) > 0 {
		reason := fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
		return Result{Passed: false, Metrics: metrics, Reason: reason}
	}
	return Result{Passed: true, Metrics: metrics, Reason: "all checks passed"}
}

// #endregion check

// #region helpers
// entropy returns the Shannon entropy of weights in bits.
func entropy(weights []float64) float64 {
	var h float64
	for _, w := range weights {
		if w > 0 {
			h -= w * math.Log2(w)
		}
	}
	return h
}

// #endregion helpers
