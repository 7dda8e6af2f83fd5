// Package journal records gen-patt runs in a SQLite database.
//
// Each invocation opens a session, appends one row per convergence
// iteration and closes the session with the final pattern, stored
// zstd-compressed so that it can be recovered byte for byte later.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thesyncim/eidpatt"
)

// ErrNotFound indicates an unknown session id.
var ErrNotFound = errors.New("journal: session not found")

// memSeq names in-memory databases so that each journal gets its own.
var memSeq atomic.Int64

// Journal is a run journal backed by SQLite.
// All methods are safe for concurrent use.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

// Session describes one recorded gen-patt invocation.
type Session struct {
	ID         int64
	Pattern    string
	Mode       string
	Format     string
	Rate       float64
	Gamma      float64
	Length     int64
	Start      int64
	Tolerance  float64
	Started    time.Time
	Finished   time.Time // zero while the session is open
	Converged  bool
	Iterations int
}

// Open opens or creates the journal at path. The special path ":memory:"
// opens a private in-memory journal.
func Open(path string) (*Journal, error) {
	connStr := path
	if path == ":memory:" {
		connStr = fmt.Sprintf("file:journal-%d?mode=memory&cache=shared", memSeq.Add(1))
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: enable WAL mode: %w", err)
		}
	}

	j := &Journal{db: db}
	if err := j.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create tables: %w", err)
	}
	return j, nil
}

func (j *Journal) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pattern TEXT NOT NULL,
		mode TEXT NOT NULL,
		format TEXT NOT NULL,
		rate REAL NOT NULL,
		gamma REAL NOT NULL,
		length INTEGER NOT NULL,
		start INTEGER NOT NULL,
		tolerance REAL NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		converged INTEGER DEFAULT 0,
		pattern_size INTEGER,
		pattern_zstd BLOB
	);

	CREATE TABLE IF NOT EXISTS iterations (
		session_id INTEGER NOT NULL,
		iteration INTEGER NOT NULL,
		generated INTEGER NOT NULL,
		processed INTEGER NOT NULL,
		disturbed INTEGER NOT NULL,
		whole_rate REAL NOT NULL,
		tail_rate REAL,
		deviation REAL NOT NULL,
		PRIMARY KEY (session_id, iteration),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}

// Begin opens a session for a normalised request and returns its id.
// tolerance is the requested one; Finish replaces it with the enforced value.
func (j *Journal) Begin(pattern string, req eidpatt.Request, tolerance float64) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	res, err := j.db.Exec(`
		INSERT INTO sessions (pattern, mode, format, rate, gamma, length, start, tolerance, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pattern, req.Mode.String(), req.Format.String(), req.Rate, req.Gamma,
		req.Length, req.Start, tolerance, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("journal: begin session: %w", err)
	}
	return res.LastInsertId()
}

// Record appends one iteration to session id.
func (j *Journal) Record(id int64, it eidpatt.Iteration) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var tail sql.NullFloat64
	if it.HasTail {
		tail = sql.NullFloat64{Float64: it.Tail, Valid: true}
	}
	_, err := j.db.Exec(`
		INSERT INTO iterations (session_id, iteration, generated, processed, disturbed, whole_rate, tail_rate, deviation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, it.Iteration, it.Generated, it.Processed, it.Disturbed, it.Whole, tail, it.Deviation)
	if err != nil {
		return fmt.Errorf("journal: record iteration %d: %w", it.Iteration, err)
	}
	return nil
}

// Observer returns an eidpatt.Observer that records into session id.
// Recording errors are passed to onErr, which may be nil.
func (j *Journal) Observer(id int64, onErr func(error)) eidpatt.Observer {
	return func(it eidpatt.Iteration) {
		if err := j.Record(id, it); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

// Finish closes session id with the outcome in rep and stores the final
// pattern bytes.
func (j *Journal) Finish(id int64, rep *eidpatt.Report, pattern []byte) error {
	blob, err := compress(pattern)
	if err != nil {
		return fmt.Errorf("journal: compress pattern: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	res, err := j.db.Exec(`
		UPDATE sessions SET finished_at = ?, converged = ?, tolerance = ?, pattern_size = ?, pattern_zstd = ?
		WHERE id = ?`,
		time.Now().UTC(), rep.Converged, rep.Tolerance, len(pattern), blob, id)
	if err != nil {
		return fmt.Errorf("journal: finish session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Sessions returns the most recent sessions, newest first.
func (j *Journal) Sessions(limit int) ([]Session, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`
		SELECT s.id, s.pattern, s.mode, s.format, s.rate, s.gamma, s.length, s.start,
			s.tolerance, s.started_at, s.finished_at, s.converged,
			(SELECT COUNT(*) FROM iterations i WHERE i.session_id = s.id)
		FROM sessions s
		ORDER BY s.started_at DESC, s.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var finished sql.NullTime
		if err := rows.Scan(&s.ID, &s.Pattern, &s.Mode, &s.Format, &s.Rate, &s.Gamma,
			&s.Length, &s.Start, &s.Tolerance, &s.Started, &finished, &s.Converged, &s.Iterations); err != nil {
			return nil, fmt.Errorf("journal: scan session: %w", err)
		}
		if finished.Valid {
			s.Finished = finished.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Iterations returns the recorded iterations of session id in order.
func (j *Journal) Iterations(id int64) ([]eidpatt.Iteration, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`
		SELECT iteration, generated, processed, disturbed, whole_rate, tail_rate, deviation
		FROM iterations WHERE session_id = ? ORDER BY iteration`, id)
	if err != nil {
		return nil, fmt.Errorf("journal: query iterations: %w", err)
	}
	defer rows.Close()

	var out []eidpatt.Iteration
	for rows.Next() {
		var it eidpatt.Iteration
		var tail sql.NullFloat64
		if err := rows.Scan(&it.Iteration, &it.Generated, &it.Processed, &it.Disturbed,
			&it.Whole, &tail, &it.Deviation); err != nil {
			return nil, fmt.Errorf("journal: scan iteration: %w", err)
		}
		it.Tail, it.HasTail = tail.Float64, tail.Valid
		out = append(out, it)
	}
	return out, rows.Err()
}

// Pattern returns the decompressed final pattern of session id.
func (j *Journal) Pattern(id int64) ([]byte, error) {
	j.mu.Lock()
	var blob []byte
	var size sql.NullInt64
	err := j.db.QueryRow(`SELECT pattern_zstd, pattern_size FROM sessions WHERE id = ?`, id).Scan(&blob, &size)
	j.mu.Unlock()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journal: query pattern: %w", err)
	}
	if !size.Valid {
		return nil, nil
	}
	data, err := decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("journal: decompress pattern: %w", err)
	}
	if int64(len(data)) != size.Int64 {
		return nil, fmt.Errorf("journal: pattern size %d, want %d", len(data), size.Int64)
	}
	return data, nil
}
