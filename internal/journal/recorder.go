package journal

import (
	"encoding/json"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
)

// #region recorder
// Recorder writes engine results to the journal. Write failures are logged
// and swallowed so a broken journal never ends a game.
type Recorder struct {
	journal *Journal
}

// NewRecorder returns a reporter backed by j.
func NewRecorder(j *Journal) *Recorder {
	return &Recorder{journal: j}
}

// ReportRound appends the round to the journal.
func (r *Recorder) ReportRound(res engine.RoundResult) error {
	rec, err := RoundFromResult(res)
	if err == nil {
		err = r.journal.LogRound(rec)
	}
	if err != nil {
		glog.Warningf("journal: session %s round %d not recorded: %v", res.SessionID, res.Round, err)
	}
	return nil
}

// ReportSummary closes the session row.
func (r *Recorder) ReportSummary(s engine.Summary) error {
	learned, err := EncodeLearned(s.Learned)
	if err == nil {
		err = r.journal.FinishSession(SessionRecord{
			SessionID:   s.SessionID,
			Rounds:      s.Rounds,
			Score:       s.Score,
			Reason:      s.Reason,
			LearnedJSON: learned,
		})
	}
	if err != nil {
		glog.Warningf("journal: session %s summary not recorded: %v", s.SessionID, err)
	}
	return nil
}

// #endregion recorder

// #region conversions
// RoundFromResult converts an engine result to a journal row.
func RoundFromResult(res engine.RoundResult) (RoundRecord, error) {
	rec := RoundRecord{
		SessionID: res.SessionID,
		Round:     res.Round,
		Opponent:  res.Opponent.Symbol(),
		Computer:  res.Computer.Symbol(),
		Predicted: res.Predicted.Symbol(),
		Outcome:   res.Outcome.Score(),
		Score:     res.Score,
		KeyBefore: res.KeyBefore.String(),
		KeyAfter:  res.KeyAfter.String(),
	}
	if res.Weights != nil {
		b, err := json.Marshal([]float64(res.Weights))
		if err != nil {
			return rec, errors.Wrap(err, "marshal weights")
		}
		rec.WeightsJSON = string(b)
	}
	return rec, nil
}

// EncodeLearned renders a store snapshot as JSON.
func EncodeLearned(entries []state.Entry) (string, error) {
	out := make([]LearnedEntry, len(entries))
	for i, e := range entries {
		out[i] = LearnedEntry{Key: e.Key.String(), Weights: []float64(e.Distribution)}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "marshal learned")
	}
	return string(b), nil
}

// DecodeLearned parses the JSON produced by EncodeLearned.
func DecodeLearned(s string) ([]LearnedEntry, error) {
	if s == "" {
		return nil, nil
	}
	var out []LearnedEntry
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, errors.Wrap(err, "unmarshal learned")
	}
	return out, nil
}

// #endregion conversions
