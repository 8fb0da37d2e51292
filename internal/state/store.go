package state

import (
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/update"
)

// #region errors
var (
	// ErrUnknownStateKey means a key was looked up that the store was never
	// initialized with. It indicates a programming error.
	ErrUnknownStateKey = errors.New("unknown state key")
	// ErrSlotOutOfRange means a reinforcement targeted a slot outside the
	// distribution.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrCorruptDistribution means a proposed distribution failed validation
	// and was not committed.
	ErrCorruptDistribution = errors.New("corrupt distribution")
)

// #endregion errors

// #region store-struct
// Store maps every reachable key to its distribution. It lives for one
// session and is not safe for concurrent use.
type Store struct {
	keys   []Key
	slots  int
	dists  map[Key]Distribution
	config eval.Config
}

// #endregion store-struct

// #region constructor
// NewStore creates a store with a uniform distribution of the given number
// of slots under every key.
func NewStore(keys []Key, slots int) *Store {
	s := &Store{
		keys:   make([]Key, len(keys)),
		slots:  slots,
		dists:  make(map[Key]Distribution, len(keys)),
		config: eval.DefaultConfig(),
	}
	copy(s.keys, keys)
	for _, k := range keys {
		s.dists[k] = Uniform(slots)
	}
	return s
}

// #endregion constructor

// #region get
// Get returns a copy of the distribution stored under key.
func (s *Store) Get(key Key) (Distribution, error) {
	d, ok := s.dists[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStateKey, "get %s", key)
	}
	return d.Clone(), nil
}

// Slots returns the number of slots per distribution.
func (s *Store) Slots() int {
	return s.slots
}

// #endregion get

// #region reinforce
// Reinforcement describes a committed update.
type Reinforcement struct {
	Key     Key
	Before  Distribution
	After   Distribution
	Metrics update.Metrics
	Eval    eval.Result
}

// Reinforce shifts the distribution under key toward slot and commits the
// result only if it passes validation.
func (s *Store) Reinforce(key Key, slot int, config update.Config) (Reinforcement, error) {
	old, ok := s.dists[key]
	if !ok {
		return Reinforcement{}, errors.Wrapf(ErrUnknownStateKey, "reinforce %s", key)
	}
	if slot < 0 || slot >= len(old) {
		return Reinforcement{}, errors.Wrapf(ErrSlotOutOfRange, "reinforce %s slot %d of %d", key, slot, len(old))
	}

	result := update.Reinforce(old, slot, config)
	check := eval.Check(result.Weights, s.config)
	rf := Reinforcement{
		Key:     key,
		Before:  old.Clone(),
		After:   Distribution(result.Weights),
		Metrics: result.Metrics,
		Eval:    check,
	}
	if !check.Passed {
		return rf, errors.Wrapf(ErrCorruptDistribution, "reinforce %s: %s", key, check.Reason)
	}

	s.dists[key] = Distribution(result.Weights).Clone()
	return rf, nil
}

// #endregion reinforce

// #region snapshot
// Snapshot returns a copy of every entry in initialization order.
func (s *Store) Snapshot() []Entry {
	entries := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		entries = append(entries, Entry{Key: k, Distribution: s.dists[k].Clone()})
	}
	return entries
}

// #endregion snapshot
