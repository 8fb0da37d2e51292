package journal

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	strategy      TEXT NOT NULL,
	seed          INTEGER NOT NULL,
	max_rounds    INTEGER NOT NULL,
	target_score  INTEGER NOT NULL,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	rounds        INTEGER NOT NULL DEFAULT 0,
	score         INTEGER NOT NULL DEFAULT 0,
	reason        TEXT,
	learned_json  TEXT
);

CREATE TABLE IF NOT EXISTS rounds (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	round         INTEGER NOT NULL,
	opponent_move TEXT NOT NULL,
	computer_move TEXT NOT NULL,
	predicted     TEXT NOT NULL,
	outcome       INTEGER NOT NULL,
	score         INTEGER NOT NULL,
	key_before    TEXT NOT NULL,
	key_after     TEXT NOT NULL,
	weights_json  TEXT,
	created_at    TEXT NOT NULL,
	UNIQUE (session_id, round),
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`

// #endregion schema

// ErrSessionNotFound is returned when a session ID has no row.
var ErrSessionNotFound = errors.New("session not found")

// #region journal-struct
// Journal records sessions and rounds in SQLite. It is an audit trail only;
// nothing in it is loaded back into an engine.
type Journal struct {
	db *sql.DB
}

// #endregion journal-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pragma")
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pragma fk")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// DB returns the underlying *sql.DB.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// #endregion constructor

// #region start-session
// StartSession inserts an open session row.
func (j *Journal) StartSession(rec SessionRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}
	_, err := j.db.Exec(
		`INSERT INTO sessions (session_id, strategy, seed, max_rounds, target_score, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Strategy, rec.Seed, rec.MaxRounds, rec.TargetScore,
		rec.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.Wrapf(err, "insert session %s", rec.SessionID)
	}
	return nil
}

// #endregion start-session

// #region log-round
// LogRound appends a round and updates the session's running totals in one
// transaction.
func (j *Journal) LogRound(rec RoundRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := j.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO rounds (session_id, round, opponent_move, computer_move, predicted, outcome, score,
		                     key_before, key_after, weights_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Round, rec.Opponent, rec.Computer, rec.Predicted, rec.Outcome, rec.Score,
		rec.KeyBefore, rec.KeyAfter, nullIfEmpty(rec.WeightsJSON), rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.Wrap(err, "insert round")
	}

	_, err = tx.Exec(
		`UPDATE sessions SET rounds = ?, score = ? WHERE session_id = ?`,
		rec.Round, rec.Score, rec.SessionID,
	)
	if err != nil {
		return errors.Wrap(err, "update session totals")
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// #endregion log-round

// #region finish-session
// FinishSession closes a session with its final totals and learned table.
func (j *Journal) FinishSession(rec SessionRecord) error {
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}
	res, err := j.db.Exec(
		`UPDATE sessions SET finished_at = ?, rounds = ?, score = ?, reason = ?, learned_json = ?
		 WHERE session_id = ?`,
		rec.FinishedAt.Format(time.RFC3339Nano), rec.Rounds, rec.Score,
		nullIfEmpty(rec.Reason), nullIfEmpty(rec.LearnedJSON), rec.SessionID,
	)
	if err != nil {
		return errors.Wrapf(err, "finish session %s", rec.SessionID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(ErrSessionNotFound, rec.SessionID)
	}
	return nil
}

// #endregion finish-session

// #region get-session
const sessionColumns = `session_id, strategy, seed, max_rounds, target_score, started_at,
	finished_at, rounds, score, reason, learned_json`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var startedStr string
	var finishedStr, reason, learned sql.NullString

	err := row.Scan(&rec.SessionID, &rec.Strategy, &rec.Seed, &rec.MaxRounds, &rec.TargetScore,
		&startedStr, &finishedStr, &rec.Rounds, &rec.Score, &reason, &learned)
	if err != nil {
		return SessionRecord{}, err
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if finishedStr.Valid {
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr.String)
	}
	if reason.Valid {
		rec.Reason = reason.String
	}
	if learned.Valid {
		rec.LearnedJSON = learned.String
	}
	return rec, nil
}

// GetSession retrieves one session by ID.
func (j *Journal) GetSession(id string) (SessionRecord, error) {
	rec, err := scanSession(j.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return SessionRecord{}, errors.Wrap(ErrSessionNotFound, id)
	}
	if err != nil {
		return SessionRecord{}, errors.Wrapf(err, "get session %s", id)
	}
	return rec, nil
}

// #endregion get-session

// #region list-sessions
// ListSessions returns the most recently started sessions.
func (j *Journal) ListSessions(limit int) ([]SessionRecord, error) {
	rows, err := j.db.Query(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list sessions")
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-sessions

// #region rounds
// Rounds returns every round of a session in play order.
func (j *Journal) Rounds(sessionID string) ([]RoundRecord, error) {
	rows, err := j.db.Query(
		`SELECT session_id, round, opponent_move, computer_move, predicted, outcome, score,
		        key_before, key_after, weights_json, created_at
		 FROM rounds WHERE session_id = ? ORDER BY round ASC`, sessionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list rounds")
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		var weights sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.SessionID, &rec.Round, &rec.Opponent, &rec.Computer, &rec.Predicted,
			&rec.Outcome, &rec.Score, &rec.KeyBefore, &rec.KeyAfter, &weights, &createdStr); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		if weights.Valid {
			rec.WeightsJSON = weights.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion rounds

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
