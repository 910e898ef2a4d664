package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"benchkit/internal/suite"
)

// SQLiteStore implements Store on a local SQLite database. Measurements are
// stored as one JSON payload per run; the history is append-only.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database and applies
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		commit_hash TEXT,
		measurements TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) Save(run suite.Run) error {
	payload, err := json.Marshal(run.Measurements)
	if err != nil {
		return fmt.Errorf("failed to marshal measurements: %w", err)
	}

	query := `INSERT INTO runs (created_at, commit_hash, measurements) VALUES (?, ?, ?)`
	_, err = s.db.Exec(query, run.Timestamp.UTC(), run.Commit, string(payload))
	return err
}

func (s *SQLiteStore) LoadAll() ([]suite.Run, error) {
	query := `SELECT created_at, commit_hash, measurements FROM runs ORDER BY created_at ASC, id ASC`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (s *SQLiteStore) LoadLatest() (*suite.Run, error) {
	query := `SELECT created_at, commit_hash, measurements FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRuns(rows *sql.Rows) ([]suite.Run, error) {
	var runs []suite.Run
	for rows.Next() {
		var (
			run     suite.Run
			created time.Time
			payload string
		)
		if err := rows.Scan(&created, &run.Commit, &payload); err != nil {
			return nil, err
		}
		run.Timestamp = created
		if err := json.Unmarshal([]byte(payload), &run.Measurements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal measurements: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
