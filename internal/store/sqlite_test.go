package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := s.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	older := sampleRun(time.Now().Add(-time.Hour).Truncate(time.Second), "abc")
	newer := sampleRun(time.Now().Truncate(time.Second), "def")
	require.NoError(t, s.Save(older))
	require.NoError(t, s.Save(newer))

	runs, err = s.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "abc", runs[0].Commit)
	assert.Equal(t, "def", runs[1].Commit)
	require.Len(t, runs[0].Measurements, 2)
	assert.Equal(t, "hash", runs[0].Measurements[0].Name)
	assert.Equal(t, "small", runs[0].Measurements[0].Label)
	assert.Len(t, runs[0].Measurements[0].Samples, 3)

	latest, err = s.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "def", latest.Commit)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleRun(time.Now().Truncate(time.Second), "abc")))
	require.NoError(t, s.Close())

	// Data survives reopening; migrate is idempotent.
	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "abc", runs[0].Commit)
}
