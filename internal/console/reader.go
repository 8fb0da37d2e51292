package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/engine"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// #region constants
const (
	// Prompt is printed before every read.
	Prompt = "Make a move (R for Rock, P for Paper, S for Scissors): "
	// DefaultMaxAttempts bounds consecutive invalid entries.
	DefaultMaxAttempts = 100
)

// ErrTooManyInvalidMoves is returned after MaxAttempts invalid entries in a
// row. It wraps engine.ErrInvalidInput so the session ends as invalid_input.
var ErrTooManyInvalidMoves = errors.Wrap(engine.ErrInvalidInput, "too many invalid moves")

// #endregion constants

// #region reader
// MoveReader prompts on w and reads moves line by line from r.
type MoveReader struct {
	scanner     *bufio.Scanner
	out         io.Writer
	MaxAttempts int
}

// NewMoveReader creates a reader with DefaultMaxAttempts.
func NewMoveReader(r io.Reader, w io.Writer) *MoveReader {
	return &MoveReader{
		scanner:     bufio.NewScanner(r),
		out:         w,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// ReadMove prompts until a valid symbol is entered. Invalid entries are
// reported and re-prompted; the end of input yields io.EOF.
func (m *MoveReader) ReadMove(ctx context.Context) (game.Move, error) {
	for attempt := 0; attempt < m.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(m.out, Prompt)
		if !m.scanner.Scan() {
			if err := m.scanner.Err(); err != nil {
				return 0, errors.Wrap(err, "scan input")
			}
			return 0, io.EOF
		}
		text := m.scanner.Text()
		move, err := game.ParseMove(text)
		if err != nil {
			fmt.Fprintf(m.out, "%s is not a valid move\n", text)
			continue
		}
		return move, nil
	}
	return 0, errors.Wrapf(ErrTooManyInvalidMoves, "%d attempts", m.MaxAttempts)
}

// #endregion reader
