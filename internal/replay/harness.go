package replay

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/predict"
	"github.com/danielpatrickdp/adaptive-rps/internal/strategy"
)

// #region types
// Config describes how a recorded session was played.
type Config struct {
	Strategy string
	Seed     int64
	// Draws, when set, replaces the seeded generator with a fixed cycle of
	// draws.
	Draws  []float64
	Engine engine.Config
}

// Expected is the recorded result of one round.
type Expected struct {
	Round    int
	Computer game.Move
	Outcome  game.Outcome
}

// Mismatch is a round whose replayed result differs from the recording.
type Mismatch struct {
	Round int
	Field string
	Want  string
	Got   string
}

// Run is the result of replaying a move sequence.
type Run struct {
	Results []engine.RoundResult
	Summary engine.Summary
}

// #endregion types

// #region replay
// Replay plays moves through a fresh engine. The engine takes exactly one
// draw per round, so the same strategy, seed and moves always produce the
// same rounds. Moves left over once the session finishes are ignored.
func Replay(config Config, moves []game.Move) (Run, error) {
	strat, err := strategy.ByName(config.Strategy)
	if err != nil {
		return Run{}, err
	}

	var src predict.Source = rand.New(rand.NewSource(config.Seed))
	if len(config.Draws) > 0 {
		src = &drawCycle{draws: config.Draws}
	}

	e := engine.New(strat, src, config.Engine)
	results := make([]engine.RoundResult, 0, len(moves))
	for i, m := range moves {
		if e.Finished() {
			break
		}
		res, err := e.Step(m, nil)
		if err != nil {
			return Run{Results: results}, errors.Wrapf(err, "replay round %d", i+1)
		}
		results = append(results, res)
	}

	sess := e.Session()
	reason := engine.ReasonInputClosed
	switch {
	case sess.Score >= config.Engine.TargetScore:
		reason = engine.ReasonTargetScore
	case sess.Round >= config.Engine.MaxRounds:
		reason = engine.ReasonMaxRounds
	}
	return Run{
		Results: results,
		Summary: engine.Summary{
			SessionID: sess.ID,
			Strategy:  sess.Strategy,
			Rounds:    sess.Round,
			Score:     sess.Score,
			Wins:      sess.Wins,
			Ties:      sess.Ties,
			Losses:    sess.Losses,
			Reason:    reason,
			Learned:   e.Store().Snapshot(),
		},
	}, nil
}

// #endregion replay

// #region compare
// Compare lists every difference between replayed results and the
// recording, including rounds present on only one side.
func Compare(results []engine.RoundResult, expected []Expected) []Mismatch {
	var out []Mismatch
	n := len(results)
	if len(expected) > n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(results):
			out = append(out, Mismatch{Round: expected[i].Round, Field: "round", Want: "played", Got: "missing"})
			continue
		case i >= len(expected):
			out = append(out, Mismatch{Round: results[i].Round, Field: "round", Want: "missing", Got: "played"})
			continue
		}
		r, e := results[i], expected[i]
		if r.Computer != e.Computer {
			out = append(out, Mismatch{Round: e.Round, Field: "computer", Want: e.Computer.Symbol(), Got: r.Computer.Symbol()})
		}
		if r.Outcome != e.Outcome {
			out = append(out, Mismatch{Round: e.Round, Field: "outcome", Want: e.Outcome.String(), Got: r.Outcome.String()})
		}
	}
	return out
}

// #endregion compare

// #region draw-cycle
type drawCycle struct {
	draws []float64
	next  int
}

func (d *drawCycle) Float64() float64 {
	v := d.draws[d.next%len(d.draws)]
	d.next++
	return v
}

// #endregion draw-cycle
