package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(Config{Type: "file", ConnectionString: filepath.Join(dir, "h.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	s.Close()

	s, err = NewStore(Config{ConnectionString: filepath.Join(dir, "default.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	s.Close()

	s, err = NewStore(Config{Type: "sqlite", ConnectionString: filepath.Join(dir, "h.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	_, err = NewStore(Config{Type: "postgres"})
	assert.Error(t, err)

	_, err = NewStore(Config{Type: "cassandra"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store type")
}
