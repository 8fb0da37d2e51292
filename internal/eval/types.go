package eval

// #region eval-config
// Config holds the tolerances used to validate a distribution.
type Config struct {
	SumTolerance float64 // max |sum - 1|
}

// DefaultConfig returns the tolerance used by the transition store.
func DefaultConfig() Config {
	return Config{
		SumTolerance: 1e-6,
	}
}

// #endregion eval-config

// #region eval-metric
// Metric captures a single validation check result.
type Metric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// Result is the output of validating one distribution.
type Result struct {
	Passed  bool
	Metrics []Metric
	Reason  string
}

// #endregion eval-result
