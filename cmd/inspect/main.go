package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/journal"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the rps journal")
	last := flag.Int("last", 20, "show N most recent sessions")
	session := flag.String("session", "", "show single session detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/rps.db [--last N] [--session id] [--json]")
		os.Exit(2)
	}

	j, err := journal.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer j.Close()

	if *session != "" {
		err = runDetailMode(j, *session, *jsonOut)
	} else {
		err = runListMode(j, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID string `json:"session_id"`
	Strategy  string `json:"strategy"`
	Seed      int64  `json:"seed"`
	Rounds    int    `json:"rounds"`
	Score     int    `json:"score"`
	Reason    string `json:"reason,omitempty"`
	StartedAt string `json:"started_at"`
}

func runListMode(j *journal.Journal, last int, jsonOut bool) error {
	sessions, err := j.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	// Journal returns DESC, reverse for chronological
	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		reason := s.Reason
		if s.FinishedAt.IsZero() {
			reason = "open"
		}
		rows[len(sessions)-1-i] = listRow{
			SessionID: s.SessionID,
			Strategy:  s.Strategy,
			Seed:      s.Seed,
			Rounds:    s.Rounds,
			Score:     s.Score,
			Reason:    reason,
			StartedAt: s.StartedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %-18s  %6s  %5s  %-12s  %s\n", "Session", "Strategy", "Rounds", "Score", "Reason", "Started")
	fmt.Printf("%-10s+-%-18s+-%6s+-%5s+-%-12s+-%s\n",
		"----------", "------------------", "------", "-----", "------------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %-18s  %6d  %5d  %-12s  %s\n",
			shortID(r.SessionID), r.Strategy, r.Rounds, r.Score, r.Reason, r.StartedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	SessionID string          `json:"session_id"`
	Strategy  string          `json:"strategy"`
	Seed      int64           `json:"seed"`
	Rounds    int             `json:"rounds"`
	Score     int             `json:"score"`
	Reason    string          `json:"reason"`
	History   []roundRow      `json:"history"`
	Learned   []learnedDetail `json:"learned,omitempty"`
}

type roundRow struct {
	Round     int    `json:"round"`
	Opponent  string `json:"opponent"`
	Computer  string `json:"computer"`
	Predicted string `json:"predicted"`
	Outcome   int    `json:"outcome"`
	Score     int    `json:"score"`
	Key       string `json:"key"`
}

type learnedDetail struct {
	Key     string    `json:"key"`
	Weights []float64 `json:"weights"`
	Entropy float64   `json:"entropy"`
	Healthy bool      `json:"healthy"`
}

func runDetailMode(j *journal.Journal, sessionID string, jsonOut bool) error {
	s, err := j.GetSession(sessionID)
	if err != nil {
		return err
	}
	rounds, err := j.Rounds(sessionID)
	if err != nil {
		return err
	}
	learned, err := journal.DecodeLearned(s.LearnedJSON)
	if err != nil {
		return errors.Wrapf(err, "session %s", sessionID)
	}

	out := detailOutput{
		SessionID: s.SessionID,
		Strategy:  s.Strategy,
		Seed:      s.Seed,
		Rounds:    s.Rounds,
		Score:     s.Score,
		Reason:    s.Reason,
	}
	for _, r := range rounds {
		out.History = append(out.History, roundRow{
			Round:     r.Round,
			Opponent:  r.Opponent,
			Computer:  r.Computer,
			Predicted: r.Predicted,
			Outcome:   r.Outcome,
			Score:     r.Score,
			Key:       r.KeyBefore + " -> " + r.KeyAfter,
		})
	}
	for _, l := range learned {
		check := eval.Check(l.Weights, eval.DefaultConfig())
		var h float64
		for _, m := range check.Metrics {
			if m.Name == "entropy" {
				h = m.Value
			}
		}
		out.Learned = append(out.Learned, learnedDetail{Key: l.Key, Weights: l.Weights, Entropy: h, Healthy: check.Passed})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session:  %s\n", out.SessionID)
	fmt.Printf("Strategy: %s\n", out.Strategy)
	fmt.Printf("Seed:     %d\n", out.Seed)
	fmt.Printf("Rounds:   %d\n", out.Rounds)
	fmt.Printf("Score:    %d\n", out.Score)
	fmt.Printf("Reason:   %s\n", out.Reason)

	fmt.Printf("\n%5s  %-3s %-3s %-3s %4s %5s  %s\n", "Round", "Opp", "Cmp", "Prd", "Out", "Score", "Key")
	for _, r := range out.History {
		fmt.Printf("%5d  %-3s %-3s %-3s %+4d %5d  %s\n",
			r.Round, r.Opponent, r.Computer, r.Predicted, r.Outcome, r.Score, r.Key)
	}

	if len(out.Learned) > 0 {
		fmt.Printf("\nLearned transitions:\n")
		for _, l := range out.Learned {
			fmt.Printf("  %-4s %v  entropy=%.4f healthy=%v\n", l.Key, formatWeights(l.Weights), l.Entropy, l.Healthy)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func formatWeights(w []float64) string {
	s := "["
	for i, x := range w {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.4f", x)
	}
	return s + "]"
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal json")
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
