package strategy

import (
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
	"github.com/danielpatrickdp/adaptive-rps/internal/update"
)

// ResultConditioned keys the table by whether the computer won or lost the
// last decisive round together with the opponent's move in it. Each key
// holds six slots: the won half then the lost half.
type ResultConditioned struct {
	config update.Config
}

// NewResultConditioned returns the won/lost strategy with its tuned rates.
func NewResultConditioned() *ResultConditioned {
	return &ResultConditioned{config: update.ResultConditionedConfig()}
}

func (s *ResultConditioned) Name() string { return ResultConditionedName }

func (s *ResultConditioned) Keys() []state.Key {
	keys := make([]state.Key, 0, 2*game.NumMoves)
	for _, marker := range []state.Marker{state.ComputerWon, state.ComputerLost} {
		for _, m := range game.Moves {
			keys = append(keys, state.ResultKey(marker, m))
		}
	}
	return keys
}

// InitialKey seeds the first lookup with a won round against Rock.
func (s *ResultConditioned) InitialKey() state.Key {
	return state.ResultKey(state.ComputerWon, game.Rock)
}

func (s *ResultConditioned) Slots() int { return 2 * game.NumMoves }

// Slot picks the single entry matching next's half and move.
func (s *ResultConditioned) Slot(next state.Key) int {
	half := 0
	if next.Marker == state.ComputerLost {
		half = 1
	}
	return half*game.NumMoves + int(next.Move)
}

func (s *ResultConditioned) UpdateConfig() update.Config { return s.config }

// NextKey leaves the key alone on a tie.
func (s *ResultConditioned) NextKey(outcome game.Outcome, opponent game.Move, _ state.Key) (state.Key, bool) {
	switch outcome {
	case game.ComputerWin:
		return state.ResultKey(state.ComputerWon, opponent), true
	case game.ComputerLoss:
		return state.ResultKey(state.ComputerLost, opponent), true
	}
	return state.Key{}, false
}
