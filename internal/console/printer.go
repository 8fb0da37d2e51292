package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// #region printer
// Printer writes human-readable round and session results.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// ReportRound prints the move pair, the outcome and the running score.
func (p *Printer) ReportRound(r engine.RoundResult) error {
	_, err := fmt.Fprintf(p.out, "Opponent: %s vs Computer: %s\n%s\nComputer's score: %d\n\n",
		r.Opponent.Symbol(), r.Computer.Symbol(), r.Outcome, r.Score)
	return err
}

// ReportSummary prints the final tally and the learned transitions.
func (p *Printer) ReportSummary(s engine.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Game over after %d rounds (%s): %d wins, %d ties, %d losses, final score %d\n",
		s.Rounds, s.Reason, s.Wins, s.Ties, s.Losses, s.Score)
	b.WriteString("Learned transitions:\n")
	for _, e := range s.Learned {
		fmt.Fprintf(&b, "  %-4s", e.Key)
		for i, w := range e.Distribution {
			fmt.Fprintf(&b, " %s=%.4f", game.Move(i%game.NumMoves).Symbol(), w)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

// #endregion printer
