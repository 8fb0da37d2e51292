package engine

import (
	"context"
	"io"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/predict"
	"github.com/danielpatrickdp/adaptive-rps/internal/state"
	"github.com/danielpatrickdp/adaptive-rps/internal/strategy"
)

// #region errors
// ErrSessionFinished is returned by Step once the session has ended.
var ErrSessionFinished = errors.New("session finished")

// ErrInvalidInput is wrapped by move sources that stop after repeated
// invalid entries.
var ErrInvalidInput = errors.New("invalid input")

// #endregion errors

// #region engine-struct
// Engine plays the rounds of one session. It is not safe for concurrent use.
type Engine struct {
	strategy  strategy.Strategy
	store     *state.Store
	predictor *predict.Predictor
	config    Config
	session   Session
}

// #endregion engine-struct

// #region constructor
// New creates an engine with a fresh uniform store for strat, drawing
// predictions from src.
func New(strat strategy.Strategy, src predict.Source, config Config) *Engine {
	return &Engine{
		strategy:  strat,
		store:     state.NewStore(strat.Keys(), strat.Slots()),
		predictor: predict.NewPredictor(src),
		config:    config,
		session: Session{
			ID:       uuid.New().String(),
			Strategy: strat.Name(),
			Key:      strat.InitialKey(),
			Phase:    AwaitingMove,
		},
	}
}

// #endregion constructor

// #region accessors
// Session returns a copy of the current session state.
func (e *Engine) Session() Session {
	return e.session
}

// Store exposes the transition store for inspection.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Finished reports whether the session has reached a terminal phase.
func (e *Engine) Finished() bool {
	return e.session.Phase == Finished
}

// #endregion accessors

// #region step
// Step plays one round against opponent and reports it to out, which may be
// nil. Outcome and next key are computed before the store is touched, so a
// failing round leaves the session and store as they were.
func (e *Engine) Step(opponent game.Move, out Reporter) (RoundResult, error) {
	if e.Finished() {
		return RoundResult{}, ErrSessionFinished
	}
	if !opponent.Valid() {
		return RoundResult{}, errors.Wrapf(game.ErrInvalidMove, "opponent move %d", opponent)
	}
	s := &e.session
	current := s.Key

	// Resolving
	s.Phase = Resolving
	dist, err := e.store.Get(current)
	if err != nil {
		return RoundResult{}, e.abort(err, "lookup")
	}
	pred, err := e.predictor.Predict(dist)
	if err != nil {
		return RoundResult{}, e.abort(err, "predict")
	}
	outcome := game.Resolve(opponent, pred.Counter)

	// Updating
	s.Phase = Updating
	next, ok := e.strategy.NextKey(outcome, opponent, current)
	result := RoundResult{
		SessionID: s.ID,
		Round:     s.Round + 1,
		Opponent:  opponent,
		Computer:  pred.Counter,
		Predicted: pred.Predicted,
		Outcome:   outcome,
		KeyBefore: current,
		KeyAfter:  current,
	}
	if ok {
		rf, err := e.store.Reinforce(current, e.strategy.Slot(next), e.strategy.UpdateConfig())
		if err != nil {
			return RoundResult{}, e.abort(err, "reinforce")
		}
		if glog.V(2) {
			for _, m := range rf.Eval.Metrics {
				glog.Infof("session %s round %d eval %s=%.6f pass=%v", s.ID, result.Round, m.Name, m.Value, m.Pass)
			}
		}
		result.KeyAfter = next
		result.Transitioned = true
		result.Weights = rf.After
	}

	s.Key = result.KeyAfter
	s.Round++
	s.Score += outcome.Score()
	switch outcome {
	case game.ComputerWin:
		s.Wins++
	case game.Tie:
		s.Ties++
	case game.ComputerLoss:
		s.Losses++
	}
	result.Score = s.Score

	if glog.V(1) {
		glog.Infof("session %s round %d: opponent=%s computer=%s predicted=%s outcome=%s score=%d key %s -> %s",
			s.ID, result.Round, opponent.Symbol(), pred.Counter.Symbol(), pred.Predicted.Symbol(),
			outcome, s.Score, result.KeyBefore, result.KeyAfter)
	}

	// Reporting
	s.Phase = Reporting
	var reportErr error
	if out != nil {
		if err := out.ReportRound(result); err != nil {
			reportErr = errors.Wrap(err, "report round")
		}
	}

	if e.limitReached() {
		s.Phase = Finished
	} else {
		s.Phase = AwaitingMove
	}
	return result, reportErr
}

// abort ends the session after an invariant violation.
func (e *Engine) abort(err error, stage string) error {
	e.session.Phase = Finished
	glog.Errorf("session %s aborted during %s: %v", e.session.ID, stage, err)
	return errors.Wrap(err, stage)
}

// limitReached evaluates the termination condition between rounds.
func (e *Engine) limitReached() bool {
	return e.session.Round >= e.config.MaxRounds || e.session.Score >= e.config.TargetScore
}

// #endregion step

// #region run
// Run plays rounds until the session ends, reading moves from in and
// reporting to out. Input running dry or ctx being cancelled ends the
// session normally with the matching reason. Any other failure ends it with
// ReasonInvalidInput or ReasonAborted; the summary is reported either way
// and the failure is returned.
func (e *Engine) Run(ctx context.Context, in MoveSource, out Reporter) (Summary, error) {
	glog.Infof("session %s started: strategy=%s max_rounds=%d target=%d",
		e.session.ID, e.session.Strategy, e.config.MaxRounds, e.config.TargetScore)

	if e.limitReached() {
		e.session.Phase = Finished
	}

	reason := ""
	for !e.Finished() {
		move, err := in.ReadMove(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				reason = ReasonInputClosed
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				reason = ReasonCancelled
			case errors.Is(err, ErrInvalidInput):
				return e.fail(ReasonInvalidInput, out, errors.Wrap(err, "read move"))
			default:
				return e.fail(ReasonAborted, out, errors.Wrap(err, "read move"))
			}
			break
		}
		if _, err := e.Step(move, out); err != nil {
			return e.fail(ReasonAborted, out, err)
		}
	}

	if reason == "" {
		reason = ReasonMaxRounds
		if e.session.Score >= e.config.TargetScore {
			reason = ReasonTargetScore
		}
	}
	return e.finish(reason, out)
}

// finish closes the session and reports its summary.
func (e *Engine) finish(reason string, out Reporter) (Summary, error) {
	e.session.Phase = Finished
	sum := e.summary(reason)
	glog.Infof("session %s finished: reason=%s rounds=%d score=%d", sum.SessionID, reason, sum.Rounds, sum.Score)

	if out != nil {
		if err := out.ReportSummary(sum); err != nil {
			return sum, errors.Wrap(err, "report summary")
		}
	}
	return sum, nil
}

// fail closes the session after err and still reports the summary, so a
// journal row is never left open. err is returned in preference to a
// reporting failure.
func (e *Engine) fail(reason string, out Reporter, err error) (Summary, error) {
	sum, reportErr := e.finish(reason, out)
	if reportErr != nil {
		glog.Warningf("session %s: %v", sum.SessionID, reportErr)
	}
	return sum, err
}

func (e *Engine) summary(reason string) Summary {
	s := e.session
	return Summary{
		SessionID: s.ID,
		Strategy:  s.Strategy,
		Rounds:    s.Round,
		Score:     s.Score,
		Wins:      s.Wins,
		Ties:      s.Ties,
		Losses:    s.Losses,
		Reason:    reason,
		Learned:   e.store.Snapshot(),
	}
}

// #endregion run

// #region multi-reporter
// MultiReporter fans results out to several reporters, stopping at the first
// error.
type MultiReporter []Reporter

func (m MultiReporter) ReportRound(r RoundResult) error {
	for _, rep := range m {
		if err := rep.ReportRound(r); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiReporter) ReportSummary(s Summary) error {
	for _, rep := range m {
		if err := rep.ReportSummary(s); err != nil {
			return err
		}
	}
	return nil
}

// #endregion multi-reporter
