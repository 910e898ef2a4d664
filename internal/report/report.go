// Package report turns raw sample sequences into human-readable summaries
// and run-to-run comparisons. All aggregation lives here; the harness core
// only ever emits raw samples.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"benchkit/internal/suite"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Summary aggregates one measurement's sample sequence.
type Summary struct {
	Name  string
	Label string
	Count int
	Min   float64
	Mean  float64
	Max   float64
	Sum   float64
}

// Summarize computes min/mean/max over a measurement. A failed measurement
// (no samples) yields a zero summary with its identity preserved.
func Summarize(m suite.Measurement) Summary {
	s := Summary{Name: m.Name, Label: m.Label, Count: len(m.Samples)}
	if len(m.Samples) == 0 {
		return s
	}

	s.Min = float64(m.Samples[0])
	s.Max = float64(m.Samples[0])
	for _, v := range m.Samples {
		f := float64(v)
		s.Sum += f
		if f < s.Min {
			s.Min = f
		}
		if f > s.Max {
			s.Max = f
		}
	}
	s.Mean = s.Sum / float64(s.Count)
	return s
}

// WriteRun prints one run as a table of per-measurement aggregates.
func WriteRun(w io.Writer, run suite.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("BENCHMARK")+"\tSAMPLES\tMIN MS\tMEAN MS\tMAX MS\tTOTAL MS")

	for _, m := range run.Measurements {
		if m.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", m.ID(), failStyle.Render(m.Error))
			continue
		}
		s := Summarize(m)
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.1f\n",
			s.ID(), s.Count, s.Min, s.Mean, s.Max, s.Sum)
	}
	tw.Flush()
}

// ID returns the report key for this summary.
func (s Summary) ID() string {
	if s.Label == "" {
		return s.Name
	}
	return s.Name + "/" + s.Label
}

// Comparison is one benchmark's mean-sample movement between two runs.
type Comparison struct {
	Name     string
	MeanDiff float64 // percentage change, positive = slower
	Prev     Summary
	Curr     Summary
}

// Compare matches measurements by name/label across two runs and reports
// the percentage change in mean sample value for each benchmark present in
// both.
func Compare(prev, curr suite.Run) []Comparison {
	prevMap := make(map[string]Summary)
	for _, m := range prev.Measurements {
		if m.Error == "" {
			prevMap[m.ID()] = Summarize(m)
		}
	}

	var comparisons []Comparison
	for _, m := range curr.Measurements {
		if m.Error != "" {
			continue
		}
		c := Summarize(m)
		p, ok := prevMap[m.ID()]
		if !ok {
			continue
		}

		comp := Comparison{Name: m.ID(), Prev: p, Curr: c}
		if p.Mean > 0 {
			comp.MeanDiff = (c.Mean - p.Mean) / p.Mean * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// WriteComparison prints the comparisons with a regression threshold in
// percent: slower than threshold is flagged, faster than -threshold is
// highlighted as an improvement.
func WriteComparison(w io.Writer, comps []Comparison, threshold float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("BENCHMARK")+"\tPREV MS\tCURR MS\tDIFF %\tSTATUS")

	for _, c := range comps {
		status := mutedStyle.Render("ok")
		if c.MeanDiff > threshold {
			status = failStyle.Render("regressed")
		} else if c.MeanDiff < -threshold {
			status = okStyle.Render("improved")
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%+.2f%%\t%s\n",
			c.Name, c.Prev.Mean, c.Curr.Mean, c.MeanDiff, status)
	}
	tw.Flush()
}

// HasRegression reports whether any comparison exceeds the threshold.
func HasRegression(comps []Comparison, threshold float64) bool {
	for _, c := range comps {
		if c.MeanDiff > threshold {
			return true
		}
	}
	return false
}
