package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS statements (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	trace_id    TEXT NOT NULL DEFAULT '',
	statement   TEXT NOT NULL,
	ok          INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	duration_us INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_statements_trace ON statements(trace_id);
`

// Entry is one journaled statement.
type Entry struct {
	Seq        int64  `json:"seq"`
	TraceID    string `json:"trace_id,omitempty"`
	Statement  string `json:"statement"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationUS int64  `json:"duration_us"`
}

// Store is the SQLite-backed journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal database at path.
// Pragmas and schema are applied on every open; both are idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite allows one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Append stores e and returns its assigned sequence number.
// e.Seq is ignored.
func (s *Store) Append(ctx context.Context, e Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO statements (trace_id, statement, ok, error, duration_us)
		VALUES (?, ?, ?, ?, ?)
	`, e.TraceID, e.Statement, e.OK, e.Error, e.DurationUS)
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	return seq, nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, trace_id, statement, ok, error, duration_us
		FROM statements
		ORDER BY seq DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.TraceID, &e.Statement, &e.OK, &e.Error, &e.DurationUS); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return out, nil
}

// ByTrace returns every entry recorded under traceID in sequence order.
func (s *Store) ByTrace(ctx context.Context, traceID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, trace_id, statement, ok, error, duration_us
		FROM statements
		WHERE trace_id = ?
		ORDER BY seq ASC
	`, traceID)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.TraceID, &e.Statement, &e.OK, &e.Error, &e.DurationUS); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
