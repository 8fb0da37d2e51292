package replay

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/journal"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Strategy        string                  `json:"strategy"`
	Seed            int64                   `json:"seed"`
	Draws           []float64               `json:"draws,omitempty"`
	MaxRounds       int                     `json:"max_rounds"`
	TargetScore     int                     `json:"target_score"`
	Moves           string                  `json:"moves"` // e.g. "RRPS"
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureExpectedResult captures the expected computer move and outcome per
// round.
type FixtureExpectedResult struct {
	Round    int    `json:"round"`
	Computer string `json:"computer"`
	Outcome  int    `json:"outcome"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse fixture %s", path)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal fixture")
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0644), "write fixture %s", path)
}

// ToConfig converts the fixture header to a replay Config. Zero limits fall
// back to the engine defaults.
func (f *Fixture) ToConfig() Config {
	ec := engine.DefaultConfig()
	if f.MaxRounds > 0 {
		ec.MaxRounds = f.MaxRounds
	}
	if f.TargetScore > 0 {
		ec.TargetScore = f.TargetScore
	}
	return Config{Strategy: f.Strategy, Seed: f.Seed, Draws: f.Draws, Engine: ec}
}

// ParseMoves converts the fixture's move string.
func (f *Fixture) ParseMoves() ([]game.Move, error) {
	return ParseMoveString(f.Moves)
}

// Expected converts the fixture's expected results.
func (f *Fixture) Expected() ([]Expected, error) {
	out := make([]Expected, len(f.ExpectedResults))
	for i, e := range f.ExpectedResults {
		m, err := game.ParseMove(e.Computer)
		if err != nil {
			return nil, errors.Wrapf(err, "expected round %d", e.Round)
		}
		out[i] = Expected{Round: e.Round, Computer: m, Outcome: game.Outcome(e.Outcome)}
	}
	return out, nil
}

// ParseMoveString parses a run of move symbols, ignoring whitespace.
func ParseMoveString(s string) ([]game.Move, error) {
	s = strings.Join(strings.Fields(s), "")
	moves := make([]game.Move, 0, len(s))
	for i, r := range s {
		m, err := game.ParseMove(string(r))
		if err != nil {
			return nil, errors.Wrapf(err, "move %d", i+1)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// #endregion fixture-loader

// #region journal-source

// FromJournal rebuilds a fixture from a journaled session.
func FromJournal(j *journal.Journal, sessionID string) (*Fixture, error) {
	sess, err := j.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	rounds, err := j.Rounds(sessionID)
	if err != nil {
		return nil, err
	}

	var moves strings.Builder
	expected := make([]FixtureExpectedResult, len(rounds))
	for i, r := range rounds {
		moves.WriteString(r.Opponent)
		expected[i] = FixtureExpectedResult{Round: r.Round, Computer: r.Computer, Outcome: r.Outcome}
	}
	return &Fixture{
		Description:     "session " + sess.SessionID,
		Strategy:        sess.Strategy,
		Seed:            sess.Seed,
		MaxRounds:       sess.MaxRounds,
		TargetScore:     sess.TargetScore,
		Moves:           moves.String(),
		ExpectedResults: expected,
	}, nil
}

// #endregion journal-source
