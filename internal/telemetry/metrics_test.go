package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RunsStarted.Inc()
	m.RunsStarted.Inc()
	m.RunsCompleted.Inc()
	m.RunsFailed.Inc()
	m.SamplesTaken.Add(211)
	m.RunDuration.Observe(0.35)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "benchkit_runs_started_total 2")
	assert.Contains(t, out, "benchkit_runs_completed_total 1")
	assert.Contains(t, out, "benchkit_runs_failed_total 1")
	assert.Contains(t, out, "benchkit_samples_total 211")
	assert.Contains(t, out, "benchkit_run_duration_seconds_count 1")
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	// Two Metrics values must not collide on registration.
	a := NewMetrics()
	b := NewMetrics()

	a.RunsCompleted.Inc()

	srv := httptest.NewServer(b.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "benchkit_runs_completed_total 0")
}
