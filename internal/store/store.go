// Package store persists suite runs so later executions can be compared
// against them. Backends: a JSON history file, SQLite, and Postgres.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"benchkit/internal/suite"
)

// Store is the persistence interface for benchmark run history.
type Store interface {
	Save(run suite.Run) error
	LoadLatest() (*suite.Run, error)
	LoadAll() ([]suite.Run, error)
	Close() error
}

// FileStore keeps the full run history in one JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(run suite.Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *FileStore) LoadAll() ([]suite.Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []suite.Run{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []suite.Run{}, nil
	}

	var runs []suite.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs: %w", err)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *FileStore) LoadLatest() (*suite.Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}

func (s *FileStore) Close() error { return nil }
