package strategy

import (
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
	"github.com/danielpatrickdp/adaptive-rps/internal/update"
)

// #region names
const (
	FirstOrderName        = "first-order"
	ResultConditionedName = "result-conditioned"
)

// ErrUnknownStrategy is returned by ByName for an unrecognized name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// #endregion names

// #region interfaces
// Tracker derives the next state key from a finished round. ok is false when
// the round causes no transition.
type Tracker interface {
	NextKey(outcome game.Outcome, opponent game.Move, current state.Key) (next state.Key, ok bool)
}

// Strategy is a Tracker plus the shape of the transition table it keys.
type Strategy interface {
	Tracker
	Name() string
	Keys() []state.Key
	InitialKey() state.Key
	Slots() int
	// Slot returns the distribution slot reinforced when moving to next.
	Slot(next state.Key) int
	UpdateConfig() update.Config
}

// #endregion interfaces

// #region by-name
// ByName returns the strategy registered under name.
func ByName(name string) (Strategy, error) {
	switch name {
	case FirstOrderName:
		return NewFirstOrder(), nil
	case ResultConditionedName:
		return NewResultConditioned(), nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// Names lists the registered strategies.
func Names() []string {
	return []string{FirstOrderName, ResultConditionedName}
}

// #endregion by-name
