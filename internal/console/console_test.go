package console

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
	"github.com/danielpatrickdp/adaptive-rps/internal/strategy"
)

// #region reader-tests
func TestReadMoveValid(t *testing.T) {
	var out bytes.Buffer
	r := NewMoveReader(strings.NewReader("R\np\n S \n"), &out)

	want := []game.Move{game.Rock, game.Paper, game.Scissors}
	for _, w := range want {
		got, err := r.ReadMove(context.Background())
		if err != nil {
			t.Fatalf("ReadMove: %v", err)
		}
		if got != w {
			t.Fatalf("expected %v, got %v", w, got)
		}
	}
	if _, err := r.ReadMove(context.Background()); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if strings.Count(out.String(), Prompt) != 4 {
		t.Fatalf("expected 4 prompts, got output %q", out.String())
	}
}

func TestReadMoveRepromptsOnInvalid(t *testing.T) {
	var out bytes.Buffer
	r := NewMoveReader(strings.NewReader("X\nrock\nS\n"), &out)

	got, err := r.ReadMove(context.Background())
	if err != nil {
		t.Fatalf("ReadMove: %v", err)
	}
	if got != game.Scissors {
		t.Fatalf("expected Scissors, got %v", got)
	}
	if !strings.Contains(out.String(), "X is not a valid move") {
		t.Fatalf("missing invalid notice in %q", out.String())
	}
	if !strings.Contains(out.String(), "rock is not a valid move") {
		t.Fatalf("missing invalid notice in %q", out.String())
	}
}

func TestReadMoveBoundedAttempts(t *testing.T) {
	r := NewMoveReader(strings.NewReader(strings.Repeat("Q\n", 10)), io.Discard)
	r.MaxAttempts = 3

	_, err := r.ReadMove(context.Background())
	if !errors.Is(err, ErrTooManyInvalidMoves) {
		t.Fatalf("expected ErrTooManyInvalidMoves, got %v", err)
	}
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected engine.ErrInvalidInput in chain, got %v", err)
	}
}

func TestRunEndsAsInvalidInput(t *testing.T) {
	strat, err := strategy.ByName(strategy.FirstOrderName)
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	e := engine.New(strat, rand.New(rand.NewSource(1)), engine.DefaultConfig())
	r := NewMoveReader(strings.NewReader("R\nQ\nQ\n"), io.Discard)
	r.MaxAttempts = 2
	var out bytes.Buffer

	sum, err := e.Run(context.Background(), r, NewPrinter(&out))
	if !errors.Is(err, ErrTooManyInvalidMoves) {
		t.Fatalf("expected ErrTooManyInvalidMoves, got %v", err)
	}
	if sum.Rounds != 1 || sum.Reason != engine.ReasonInvalidInput {
		t.Fatalf("expected 1 round / invalid_input, got %d / %s", sum.Rounds, sum.Reason)
	}
	if !strings.Contains(out.String(), "(invalid_input)") {
		t.Fatalf("summary not printed: %q", out.String())
	}
}

func TestReadMoveCancelled(t *testing.T) {
	r := NewMoveReader(strings.NewReader("R\n"), io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.ReadMove(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// #endregion reader-tests

// #region printer-tests
func TestPrinterRound(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	err := p.ReportRound(engine.RoundResult{
		Opponent: game.Rock,
		Computer: game.Paper,
		Outcome:  game.ComputerWin,
		Score:    3,
	})
	if err != nil {
		t.Fatalf("ReportRound: %v", err)
	}
	want := "Opponent: R vs Computer: P\nVictory\nComputer's score: 3\n\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestPrinterSummary(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out)
	err := p.ReportSummary(engine.Summary{
		Rounds: 30,
		Score:  4,
		Reason: engine.ReasonMaxRounds,
		Learned: []state.Entry{
			{Key: state.MoveKey(game.Rock), Distribution: state.Distribution{0.5, 0.25, 0.25}},
		},
	})
	if err != nil {
		t.Fatalf("ReportSummary: %v", err)
	}
	s := out.String()
	for _, want := range []string{"Game over after 30 rounds", "Learned transitions:", "R=0.5000", "P=0.2500"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in %q", want, s)
		}
	}
}

// #endregion printer-tests
