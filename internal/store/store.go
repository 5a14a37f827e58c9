package store

import (
	"context"
	"database/sql"
	"fmt"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database. The journal never
// outlives the process.
const MemoryDSN = ":memory:"

// Store holds the journal database and provides access to repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies pragmas and creates the journal tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// An in-memory database exists per connection; pin to one.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// OpenMemory opens a Store backed by MemoryDSN.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for a single-user journal.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS answer_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		session_id    TEXT    NOT NULL,
		activity_id   TEXT    NOT NULL,
		question_id   TEXT    NOT NULL,
		answer        TEXT    NOT NULL,
		verdict       TEXT    NOT NULL,
		correct_units INTEGER NOT NULL,
		total_units   INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_activity ON answer_events (session_id, activity_id)`,
	`CREATE TABLE IF NOT EXISTS activity_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence    INTEGER NOT NULL,
		session_id  TEXT    NOT NULL,
		activity_id TEXT    NOT NULL,
		action      TEXT    NOT NULL,
		timestamp   INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
