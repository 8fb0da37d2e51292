package journal

import "time"

// #region session-record
// SessionRecord is one row of the sessions table.
type SessionRecord struct {
	SessionID   string
	Strategy    string
	Seed        int64
	MaxRounds   int
	TargetScore int
	StartedAt   time.Time
	FinishedAt  time.Time // zero while the session is open
	Rounds      int
	Score       int
	Reason      string
	LearnedJSON string
}

// #endregion session-record

// #region round-record
// RoundRecord is one row of the rounds table. Moves and keys are stored as
// their symbols.
type RoundRecord struct {
	SessionID   string
	Round       int
	Opponent    string
	Computer    string
	Predicted   string
	Outcome     int
	Score       int
	KeyBefore   string
	KeyAfter    string
	WeightsJSON string
	CreatedAt   time.Time
}

// #endregion round-record

// #region learned-entry
// LearnedEntry is the JSON form of one learned distribution.
type LearnedEntry struct {
	Key     string    `json:"key"`
	Weights []float64 `json:"weights"`
}

// #endregion learned-entry
