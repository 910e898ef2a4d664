package store

import (
	"fmt"
	"strings"
)

// Config selects the persistence backend.
type Config struct {
	Type             string // "file", "sqlite" or "postgres"
	ConnectionString string // file path for file/sqlite, DSN for postgres
}

// NewStore builds the backend named by config, defaulting to the JSON file
// history.
func NewStore(config Config) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			config.ConnectionString = ".benchkit.db"
		}
		return NewSQLiteStore(config.ConnectionString)
	case "file", "":
		if config.ConnectionString == "" {
			config.ConnectionString = ".benchkit/history.json"
		}
		return NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
