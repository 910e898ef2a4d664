package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"benchkit/internal/suite"
)

// PostgresStore implements Store on PostgreSQL, for shared run history
// across CI workers.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS runs (
		id SERIAL PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		commit_hash TEXT,
		measurements JSONB NOT NULL
	);`
	_, err := s.db.Exec(query)
	return err
}

func (s *PostgresStore) Save(run suite.Run) error {
	payload, err := json.Marshal(run.Measurements)
	if err != nil {
		return fmt.Errorf("failed to marshal measurements: %w", err)
	}

	query := `INSERT INTO runs (created_at, commit_hash, measurements) VALUES ($1, $2, $3)`
	_, err = s.db.Exec(query, run.Timestamp.UTC(), run.Commit, string(payload))
	return err
}

func (s *PostgresStore) LoadAll() ([]suite.Run, error) {
	query := `SELECT created_at, commit_hash, measurements FROM runs ORDER BY created_at ASC, id ASC`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (s *PostgresStore) LoadLatest() (*suite.Run, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
