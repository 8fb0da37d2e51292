package game

import (
	"strings"

	"github.com/pkg/errors"
)

// #region move
// Move is one of the three rock-paper-scissors throws.
type Move uint8

const (
	Rock Move = iota
	Paper
	Scissors
)

// NumMoves is the number of distinct moves.
const NumMoves = 3

// Moves lists every move in slot order.
var Moves = [NumMoves]Move{Rock, Paper, Scissors}

// ErrInvalidMove is returned when a symbol does not name a move.
var ErrInvalidMove = errors.New("invalid move symbol")

// Symbol returns the single-letter symbol for m ("R", "P" or "S").
func (m Move) Symbol() string {
	switch m {
	case Rock:
		return "R"
	case Paper:
		return "P"
	case Scissors:
		return "S"
	}
	return "?"
}

func (m Move) String() string {
	switch m {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	}
	return "Unknown"
}

// Valid reports whether m is one of the three moves.
func (m Move) Valid() bool {
	return m < NumMoves
}

// ParseMove converts a symbol into a Move. Surrounding whitespace is ignored
// and the letter is case-insensitive.
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return Rock, nil
	case "P":
		return Paper, nil
	case "S":
		return Scissors, nil
	}
	return 0, errors.Wrapf(ErrInvalidMove, "%q", s)
}

// #endregion move

// #region counter
// CounterTo returns the move that beats m. It is the cyclic successor in
// Rock -> Paper -> Scissors -> Rock.
func CounterTo(m Move) Move {
	return (m + 1) % NumMoves
}

// #endregion counter
