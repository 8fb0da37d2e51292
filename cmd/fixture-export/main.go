package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-rps/internal/journal"
	"github.com/danielpatrickdp/adaptive-rps/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the rps journal")
	sessionID := flag.String("session", "", "session to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *sessionID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/rps.db --session id --out path/to/fixture.json")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, sessionID, outPath string) error {
	j, err := journal.Open(dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	f, err := replay.FromJournal(j, sessionID)
	if err != nil {
		return err
	}
	if err := replay.WriteFixture(outPath, f); err != nil {
		return err
	}
	fmt.Printf("Exported %d rounds of session %s to %s\n", len(f.ExpectedResults), sessionID, outPath)
	return nil
}

// #endregion export
