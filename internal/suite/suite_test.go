package suite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchkit/internal/harness"
	"benchkit/internal/telemetry"
)

// fastOptions keeps the stopping rule tiny so suite tests finish instantly.
var fastOptions = harness.Options{TimeBudget: time.Nanosecond, MinSamples: 1}

type noopBench struct{ harness.Base }

type failingBench struct{ harness.Base }

func (failingBench) Setup(context.Context) error { return errors.New("no fixtures") }

func noopDef(name string) harness.Definition {
	return harness.Definition{
		Name: name,
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return noopBench{Base: harness.NewBase(cfg)}, nil
		},
	}
}

func quietSuite(opts harness.Options) *Suite {
	return New(opts).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExecute_AllDefinitions(t *testing.T) {
	s := quietSuite(fastOptions)
	s.Register(noopDef("hash"))
	s.Register(harness.Definition{
		Name: "sort",
		Configurations: func() []harness.Configuration {
			return []harness.Configuration{
				{Label: "small", Options: map[string]any{"n": 10}},
				{Label: "large", Options: map[string]any{"n": 1000}},
			}
		},
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return noopBench{Base: harness.NewBase(cfg)}, nil
		},
	})

	run, err := s.Execute(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, run.Timestamp.IsZero())
	require.Len(t, run.Measurements, 3)
	assert.Equal(t, "hash", run.Measurements[0].ID())
	assert.Equal(t, "sort/small", run.Measurements[1].ID())
	assert.Equal(t, "sort/large", run.Measurements[2].ID())
	for _, m := range run.Measurements {
		assert.Empty(t, m.Error)
		assert.NotEmpty(t, m.Samples)
	}
}

func TestExecute_PatternFilter(t *testing.T) {
	s := quietSuite(fastOptions)
	s.Register(noopDef("hash/sha256"))
	s.Register(noopDef("hash/fnv"))
	s.Register(noopDef("sort"))

	run, err := s.Execute(context.Background(), "hash")
	require.NoError(t, err)

	require.Len(t, run.Measurements, 2)
	assert.Equal(t, "hash/sha256", run.Measurements[0].Name)
	assert.Equal(t, "hash/fnv", run.Measurements[1].Name)
}

func TestExecute_NoMatch(t *testing.T) {
	s := quietSuite(fastOptions)
	s.Register(noopDef("hash"))

	_, err := s.Execute(context.Background(), "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmarks match")
}

func TestExecute_FailureDoesNotStopSuite(t *testing.T) {
	s := quietSuite(fastOptions)
	s.Register(harness.Definition{
		Name: "broken",
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return failingBench{Base: harness.NewBase(cfg)}, nil
		},
	})
	s.Register(noopDef("healthy"))

	metrics := telemetry.NewMetrics()
	s.WithMetrics(metrics)

	run, err := s.Execute(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, run.Measurements, 2)
	assert.Contains(t, run.Measurements[0].Error, "setup failed")
	assert.Empty(t, run.Measurements[0].Samples)
	assert.Empty(t, run.Measurements[1].Error)
	assert.NotEmpty(t, run.Measurements[1].Samples)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RunsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsCompleted))
}

func TestExecute_EmptyVariantsAborts(t *testing.T) {
	s := quietSuite(fastOptions)
	s.Register(harness.Definition{
		Name:           "empty",
		Configurations: func() []harness.Configuration { return nil },
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return noopBench{Base: harness.NewBase(cfg)}, nil
		},
	})

	_, err := s.Execute(context.Background(), "")
	assert.ErrorIs(t, err, harness.ErrNoConfigurations)
}

func TestMeasurement_ID(t *testing.T) {
	assert.Equal(t, "hash", Measurement{Name: "hash"}.ID())
	assert.Equal(t, "hash/small", Measurement{Name: "hash", Label: "small"}.ID())
}
