package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchkit/internal/harness"
	"benchkit/internal/suite"
)

func TestSummarize(t *testing.T) {
	m := suite.Measurement{
		Name:    "hash",
		Label:   "small",
		Samples: harness.SampleSequence{2.0, 1.0, 3.0},
	}

	s := Summarize(m)

	assert.Equal(t, "hash/small", s.ID())
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.InDelta(t, 6.0, s.Sum, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(suite.Measurement{Name: "broken", Error: "bench blew up"})

	assert.Equal(t, "broken", s.ID())
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)
}

func TestCompare(t *testing.T) {
	prev := suite.Run{Measurements: []suite.Measurement{
		{Name: "hash", Samples: harness.SampleSequence{1.0, 1.0}},
		{Name: "sort", Samples: harness.SampleSequence{2.0}},
	}}
	curr := suite.Run{Measurements: []suite.Measurement{
		{Name: "hash", Samples: harness.SampleSequence{1.1, 1.1}}, // 10% slower
		{Name: "json", Samples: harness.SampleSequence{3.0}},      // new, no match
	}}

	comps := Compare(prev, curr)

	require.Len(t, comps, 1)
	assert.Equal(t, "hash", comps[0].Name)
	assert.InDelta(t, 10.0, comps[0].MeanDiff, 0.01)
}

func TestCompare_SkipsFailedMeasurements(t *testing.T) {
	prev := suite.Run{Measurements: []suite.Measurement{
		{Name: "hash", Samples: harness.SampleSequence{1.0}},
	}}
	curr := suite.Run{Measurements: []suite.Measurement{
		{Name: "hash", Error: "bench blew up"},
	}}

	assert.Empty(t, Compare(prev, curr))
}

func TestWriteRun(t *testing.T) {
	run := suite.Run{Measurements: []suite.Measurement{
		{Name: "hash", Label: "small", Samples: harness.SampleSequence{1.5, 2.5}},
		{Name: "sort", Error: "bench blew up"},
	}}

	var buf bytes.Buffer
	WriteRun(&buf, run)

	out := buf.String()
	assert.Contains(t, out, "hash/small")
	assert.Contains(t, out, "2.000") // mean
	assert.Contains(t, out, "bench blew up")
}

func TestWriteComparison(t *testing.T) {
	comps := []Comparison{
		{Name: "fast", MeanDiff: -20.0},
		{Name: "slow", MeanDiff: 25.0},
		{Name: "flat", MeanDiff: 1.0},
	}

	var buf bytes.Buffer
	WriteComparison(&buf, comps, 10.0)

	out := buf.String()
	assert.Contains(t, out, "improved")
	assert.Contains(t, out, "regressed")
	assert.Contains(t, out, "ok")
}

func TestHasRegression(t *testing.T) {
	comps := []Comparison{{Name: "a", MeanDiff: 5.0}, {Name: "b", MeanDiff: 15.0}}

	assert.True(t, HasRegression(comps, 10.0))
	assert.False(t, HasRegression(comps, 20.0))
}
