package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/danielpatrickdp/adaptive-rps/internal/journal"
	"github.com/danielpatrickdp/adaptive-rps/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the rps journal (DB mode)")
	sessionID := flag.String("session", "", "session to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	dbMode := *dbPath != "" && *sessionID != ""
	if dbMode == (*fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/rps.db --session id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if dbMode {
		exitCode = runDBMode(*dbPath, *sessionID)
	} else {
		exitCode = runFixtureMode(*fixturePath)
	}
	glog.Flush()
	os.Exit(exitCode)
}

// #endregion main

// #region modes

func runDBMode(dbPath, sessionID string) int {
	j, err := journal.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer j.Close()

	f, err := replay.FromJournal(j, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		return 2
	}
	return runFixture(f)
}

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	return runFixture(f)
}

func runFixture(f *replay.Fixture) int {
	moves, err := f.ParseMoves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse moves: %v\n", err)
		return 2
	}
	expected, err := f.Expected()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse expected: %v\n", err)
		return 2
	}

	run, err := replay.Replay(f.ToConfig(), moves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	glog.Infof("replayed %d rounds of %q (%s, seed %d)", len(run.Results), f.Description, f.Strategy, f.Seed)
	return printComparison(run, expected)
}

// #endregion modes

// #region output

// printComparison outputs a comparison table and returns the exit code.
func printComparison(run replay.Run, expected []replay.Expected) int {
	fmt.Printf("%-6s| %-9s| %-9s| %-9s| %-9s| %s\n", "Round", "Expected", "Replayed", "Outcome", "Replayed", "Match")
	fmt.Printf("%-6s+%-10s+%-10s+%-10s+%-10s+%s\n",
		"------", "----------", "----------", "----------", "----------", "------")

	total := len(run.Results)
	if len(expected) < total {
		total = len(expected)
	}
	matches := 0
	for i := 0; i < total; i++ {
		e, r := expected[i], run.Results[i]
		match := "DIFF"
		if e.Computer == r.Computer && e.Outcome == r.Outcome {
			match = "OK"
			matches++
		}
		fmt.Printf("%-6d| %-9s| %-9s| %-9s| %-9s| %s\n",
			e.Round, e.Computer.Symbol(), r.Computer.Symbol(), e.Outcome, r.Outcome, match)
	}

	diffs := replay.Compare(run.Results, expected)
	fmt.Printf("\nSummary: %d compared, %d match, %d differences, final score %d (%s)\n",
		total, matches, len(diffs), run.Summary.Score, run.Summary.Reason)

	if len(diffs) > 0 {
		return 1
	}
	return 0
}

// #endregion output
