package state

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/update"
)

func firstOrderKeys() []Key {
	return []Key{MoveKey(game.Rock), MoveKey(game.Paper), MoveKey(game.Scissors)}
}

func resultKeys() []Key {
	var keys []Key
	for _, m := range []Marker{ComputerWon, ComputerLost} {
		for _, mv := range game.Moves {
			keys = append(keys, ResultKey(m, mv))
		}
	}
	return keys
}

// #region store-tests
func TestNewStoreUniform(t *testing.T) {
	cases := []struct {
		name  string
		keys  []Key
		slots int
	}{
		{"first-order", firstOrderKeys(), 3},
		{"result-conditioned", resultKeys(), 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore(c.keys, c.slots)
			for _, k := range c.keys {
				d, err := s.Get(k)
				if err != nil {
					t.Fatalf("Get(%s): %v", k, err)
				}
				if len(d) != c.slots {
					t.Fatalf("expected %d slots, got %d", c.slots, len(d))
				}
				for i, w := range d {
					if w != 1.0/float64(c.slots) {
						t.Fatalf("key %s slot %d: expected uniform, got %f", k, i, w)
					}
				}
			}
		})
	}
}

func TestGetUnknownKey(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	_, err := s.Get(ResultKey(ComputerWon, game.Rock))
	if !errors.Is(err, ErrUnknownStateKey) {
		t.Fatalf("expected ErrUnknownStateKey, got %v", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	d, _ := s.Get(MoveKey(game.Rock))
	d[0] = 0.9

	again, _ := s.Get(MoveKey(game.Rock))
	if again[0] != 1.0/3.0 {
		t.Fatalf("store mutated through returned slice: %f", again[0])
	}
}

func TestReinforceRockFromUniform(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	rf, err := s.Reinforce(MoveKey(game.Rock), int(game.Rock), update.FirstOrderConfig())
	if err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if !rf.Eval.Passed {
		t.Fatalf("expected eval pass: %s", rf.Eval.Reason)
	}

	d, _ := s.Get(MoveKey(game.Rock))
	want := []float64{0.34, 0.33, 0.33}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Fatalf("slot %d: expected %f, got %.15f", i, want[i], d[i])
		}
	}
	if math.Abs(d.Sum()-1) > 1e-6 {
		t.Fatalf("sum drifted: %.15f", d.Sum())
	}

	// Other keys untouched
	other, _ := s.Get(MoveKey(game.Paper))
	for i, w := range other {
		if w != 1.0/3.0 {
			t.Fatalf("paper slot %d changed: %f", i, w)
		}
	}
}

func TestReinforceUnknownKey(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	_, err := s.Reinforce(ResultKey(ComputerLost, game.Paper), 0, update.FirstOrderConfig())
	if !errors.Is(err, ErrUnknownStateKey) {
		t.Fatalf("expected ErrUnknownStateKey, got %v", err)
	}
}

func TestReinforceSlotOutOfRange(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	_, err := s.Reinforce(MoveKey(game.Rock), 3, update.FirstOrderConfig())
	if !errors.Is(err, ErrSlotOutOfRange) {
		t.Fatalf("expected ErrSlotOutOfRange, got %v", err)
	}
}

func TestReinforceRejectsCorruptResult(t *testing.T) {
	s := NewStore(firstOrderKeys(), 3)
	// A decay rate above 1 drives the other slots negative.
	_, err := s.Reinforce(MoveKey(game.Rock), 0, update.Config{LearningRate: 0.02, DecayRate: 2})
	if !errors.Is(err, ErrCorruptDistribution) {
		t.Fatalf("expected ErrCorruptDistribution, got %v", err)
	}

	d, _ := s.Get(MoveKey(game.Rock))
	for i, w := range d {
		if w != 1.0/3.0 {
			t.Fatalf("rejected update was committed at slot %d: %f", i, w)
		}
	}
}

func TestReinforceSixSlotTargetsSingleEntry(t *testing.T) {
	s := NewStore(resultKeys(), 6)
	key := ResultKey(ComputerWon, game.Rock)
	if _, err := s.Reinforce(key, 4, update.ResultConditionedConfig()); err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	d, _ := s.Get(key)
	for i, w := range d {
		if i == 4 {
			if !(w > 1.0/6.0) {
				t.Fatalf("target slot did not grow: %f", w)
			}
			continue
		}
		if !(w < 1.0/6.0) {
			t.Fatalf("slot %d did not shrink: %f", i, w)
		}
	}
}

func TestSnapshotOrderAndIsolation(t *testing.T) {
	keys := resultKeys()
	s := NewStore(keys, 6)
	snap := s.Snapshot()
	if len(snap) != len(keys) {
		t.Fatalf("expected %d entries, got %d", len(keys), len(snap))
	}
	for i, e := range snap {
		if e.Key != keys[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, keys[i], e.Key)
		}
	}
	snap[0].Distribution[0] = 0.5
	d, _ := s.Get(keys[0])
	if d[0] != 1.0/6.0 {
		t.Fatal("snapshot shares storage with the store")
	}
}

// #endregion store-tests

// #region key-tests
func TestKeyString(t *testing.T) {
	cases := map[Key]string{
		MoveKey(game.Rock):                     "R",
		ResultKey(ComputerWon, game.Paper):     "W:P",
		ResultKey(ComputerLost, game.Scissors): "L:S",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

// #endregion key-tests
