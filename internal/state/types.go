package state

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// #region marker
// Marker records how the last decisive round ended for the computer.
// First-order keys carry NoMarker.
type Marker uint8

const (
	NoMarker Marker = iota
	ComputerWon
	ComputerLost
)

func (m Marker) String() string {
	switch m {
	case ComputerWon:
		return "W"
	case ComputerLost:
		return "L"
	}
	return ""
}

// #endregion marker

// #region key
// Key indexes the transition store.
type Key struct {
	Marker Marker
	Move   game.Move
}

// MoveKey returns a first-order key.
func MoveKey(m game.Move) Key {
	return Key{Move: m}
}

// ResultKey returns a result-conditioned key.
func ResultKey(marker Marker, m game.Move) Key {
	return Key{Marker: marker, Move: m}
}

// String renders "R" for first-order keys and "W:R" / "L:R" otherwise.
func (k Key) String() string {
	if k.Marker == NoMarker {
		return k.Move.Symbol()
	}
	return fmt.Sprintf("%s:%s", k.Marker, k.Move.Symbol())
}

// #endregion key

// #region distribution
// Distribution holds the weights for one key. Slot i covers move i%3; a six
// slot distribution is the won half followed by the lost half.
type Distribution []float64

// Uniform returns a distribution of n equal weights.
func Uniform(n int) Distribution {
	d := make(Distribution, n)
	for i := range d {
		d[i] = 1.0 / float64(n)
	}
	return d
}

// Clone returns an independent copy of d.
func (d Distribution) Clone() Distribution {
	c := make(Distribution, len(d))
	copy(c, d)
	return c
}

// Sum returns the total weight of d.
func (d Distribution) Sum() float64 {
	return floats.Sum(d)
}

// #endregion distribution

// #region entry
// Entry pairs a key with its distribution in a snapshot.
type Entry struct {
	Key          Key
	Distribution Distribution
}

// #endregion entry
