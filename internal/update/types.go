package update

// #region update-config
// Config holds the learning and decay parameters of the reinforcement rule.
type Config struct {
	LearningRate float64 // multiplicative gain on the reinforced slot
	DecayRate    float64 // multiplicative loss on every other slot
}

// FirstOrderConfig returns the rates tuned for the last-move model.
func FirstOrderConfig() Config {
	return Config{
		LearningRate: 0.02,
		DecayRate:    0.01,
	}
}

// ResultConditionedConfig returns the rates tuned for the won/lost model.
func ResultConditionedConfig() Config {
	return Config{
		LearningRate: 0.05,
		DecayRate:    0.01,
	}
}

// #endregion update-config

// #region metrics
// Metrics captures telemetry from one reinforcement.
type Metrics struct {
	Slot     int
	Gain     float64 // weight added to the reinforced slot before renormalizing
	DecayAbs float64 // total weight removed from the other slots
	RawSum   float64 // sum before renormalizing
}

// #endregion metrics

// #region update-result
// Result bundles the new weights and the metrics of a reinforcement.
type Result struct {
	Weights []float64
	Metrics Metrics
}

// #endregion update-result
