package strategy

import (
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
	"github.com/danielpatrickdp/adaptive-rps/internal/update"
)

// FirstOrder keys the table by the opponent's last move.
type FirstOrder struct {
	config update.Config
}

// NewFirstOrder returns the last-move strategy with its tuned rates.
func NewFirstOrder() *FirstOrder {
	return &FirstOrder{config: update.FirstOrderConfig()}
}

func (s *FirstOrder) Name() string { return FirstOrderName }

func (s *FirstOrder) Keys() []state.Key {
	keys := make([]state.Key, 0, game.NumMoves)
	for _, m := range game.Moves {
		keys = append(keys, state.MoveKey(m))
	}
	return keys
}

// InitialKey seeds the first lookup with Rock.
func (s *FirstOrder) InitialKey() state.Key { return state.MoveKey(game.Rock) }

func (s *FirstOrder) Slots() int { return game.NumMoves }

func (s *FirstOrder) Slot(next state.Key) int { return int(next.Move) }

func (s *FirstOrder) UpdateConfig() update.Config { return s.config }

// NextKey always advances to the move just seen.
func (s *FirstOrder) NextKey(_ game.Outcome, opponent game.Move, _ state.Key) (state.Key, bool) {
	return state.MoveKey(opponent), true
}
