package engine

import (
	"context"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
)

// #region config
// Config holds the session termination limits.
type Config struct {
	MaxRounds   int // session ends once this many rounds are played
	TargetScore int // session ends once the computer's score reaches this
}

// DefaultConfig returns 30 rounds or a score of 10.
func DefaultConfig() Config {
	return Config{
		MaxRounds:   30,
		TargetScore: 10,
	}
}

// #endregion config

// #region phase
// Phase is the position of the session in the round state machine.
type Phase int

const (
	AwaitingMove Phase = iota
	Resolving
	Updating
	Reporting
	Finished
)

func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "awaiting_move"
	case Resolving:
		return "resolving"
	case Updating:
		return "updating"
	case Reporting:
		return "reporting"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// #endregion phase

// #region session
// Session is the mutable state of one game. It is owned by a single Engine.
type Session struct {
	ID       string
	Strategy string
	Key      state.Key
	Score    int
	Round    int
	Wins     int
	Ties     int
	Losses   int
	Phase    Phase
}

// #endregion session

// #region round-result
// RoundResult describes one completed round.
type RoundResult struct {
	SessionID    string
	Round        int
	Opponent     game.Move
	Computer     game.Move
	Predicted    game.Move
	Outcome      game.Outcome
	Score        int
	KeyBefore    state.Key
	KeyAfter     state.Key
	Transitioned bool
	// Weights is the reinforced distribution under KeyBefore; nil when the
	// round caused no transition.
	Weights state.Distribution
}

// #endregion round-result

// #region summary
// Finish reasons.
const (
	ReasonMaxRounds    = "max_rounds"
	ReasonTargetScore  = "target_score"
	ReasonInputClosed  = "input_closed"
	ReasonCancelled    = "cancelled"
	ReasonInvalidInput = "invalid_input"
	ReasonAborted      = "aborted"
)

// Summary is produced when a session ends.
type Summary struct {
	SessionID string
	Strategy  string
	Rounds    int
	Score     int
	Wins      int
	Ties      int
	Losses    int
	Reason    string
	Learned   []state.Entry
}

// #endregion summary

// #region collaborators
// MoveSource supplies validated opponent moves. ReadMove blocks until a
// move is available; io.EOF means no more moves will come, and an error
// wrapping ErrInvalidInput means the user gave up entering a valid move.
type MoveSource interface {
	ReadMove(ctx context.Context) (game.Move, error)
}

// Reporter receives round and session results.
type Reporter interface {
	ReportRound(r RoundResult) error
	ReportSummary(s Summary) error
}

// #endregion collaborators
