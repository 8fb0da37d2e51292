package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/golang/glog"

	"github.com/danielpatrickdp/adaptive-rps/internal/config"
	"github.com/danielpatrickdp/adaptive-rps/internal/console"
	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/journal"
	"github.com/danielpatrickdp/adaptive-rps/internal/strategy"
)

// #region main
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "prediction model: first-order | result-conditioned")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "optional SQLite journal path")
	flag.IntVar(&cfg.MaxRounds, "rounds", cfg.MaxRounds, "maximum rounds per session")
	flag.IntVar(&cfg.TargetScore, "target", cfg.TargetScore, "computer score that ends the session")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	strat, err := strategy.ByName(cfg.Strategy)
	if err != nil {
		glog.Exitf("strategy: %v", err)
	}
	seed := cfg.ResolveSeed()
	e := engine.New(strat, rand.New(rand.NewSource(seed)), cfg.EngineConfig())
	sess := e.Session()

	reporters := engine.MultiReporter{console.NewPrinter(os.Stdout)}

	// Journal is optional
	if cfg.DBPath != "" {
		j, err := journal.Open(cfg.DBPath)
		if err != nil {
			glog.Exitf("failed to open journal %s: %v", cfg.DBPath, err)
		}
		defer j.Close()

		err = j.StartSession(journal.SessionRecord{
			SessionID:   sess.ID,
			Strategy:    sess.Strategy,
			Seed:        seed,
			MaxRounds:   cfg.MaxRounds,
			TargetScore: cfg.TargetScore,
		})
		if err != nil {
			glog.Warningf("journal disabled: %v", err)
		} else {
			reporters = append(reporters, journal.NewRecorder(j))
		}
	}

	fmt.Println("Adaptive rock-paper-scissors.")
	fmt.Printf("  Strategy: %s | Rounds: %d | Target: %d\n", cfg.Strategy, cfg.MaxRounds, cfg.TargetScore)
	glog.Infof("session %s seed=%d db=%q", sess.ID, seed, cfg.DBPath)

	reader := console.NewMoveReader(os.Stdin, os.Stdout)
	if _, err := e.Run(context.Background(), reader, reporters); err != nil {
		glog.Errorf("session %s: %v", sess.ID, err)
		glog.Flush()
		os.Exit(1)
	}
}

// #endregion main
