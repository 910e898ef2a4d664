// Package suite runs registered benchmark definitions sequentially, one
// independent harness run per variant, and collects the raw sample
// sequences into a timestamped Run record for storage and reporting.
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"benchkit/internal/harness"
	"benchkit/internal/telemetry"
)

// Measurement is the outcome of one variant's run: either its raw sample
// sequence or the error that aborted it.
type Measurement struct {
	Name    string                 `json:"name"`
	Label   string                 `json:"label,omitempty"`
	Samples harness.SampleSequence `json:"samples,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ID returns the report key for this measurement.
func (m Measurement) ID() string {
	if m.Label == "" {
		return m.Name
	}
	return m.Name + "/" + m.Label
}

// Run is one full suite execution.
type Run struct {
	Timestamp    time.Time     `json:"timestamp"`
	Commit       string        `json:"commit,omitempty"`
	Measurements []Measurement `json:"measurements"`
}

// Suite holds the registered definitions and the runner options they all
// share. Registration happens before Execute; Suite is not safe for
// concurrent mutation.
type Suite struct {
	defs    []harness.Definition
	options harness.Options
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

func New(opts harness.Options) *Suite {
	return &Suite{options: opts, logger: slog.Default()}
}

// WithLogger replaces the suite logger.
func (s *Suite) WithLogger(logger *slog.Logger) *Suite {
	s.logger = logger
	return s
}

// WithMetrics attaches run/sample counters.
func (s *Suite) WithMetrics(m *telemetry.Metrics) *Suite {
	s.metrics = m
	return s
}

// Register appends a definition. Order of registration is execution order.
func (s *Suite) Register(def harness.Definition) {
	s.defs = append(s.defs, def)
}

// Definitions returns the registered definitions in execution order.
func (s *Suite) Definitions() []harness.Definition {
	return s.defs
}

// Execute runs every definition whose name starts with pattern (empty
// pattern matches all), strictly sequentially: one runner pass per variant,
// no fan-out. A failed run is recorded in its Measurement and does not stop
// the remaining definitions; a variant generator returning nothing is a
// configuration error and aborts the execution.
func (s *Suite) Execute(ctx context.Context, pattern string) (Run, error) {
	run := Run{Timestamp: time.Now()}

	matched := 0
	for _, def := range s.defs {
		if pattern != "" && !strings.HasPrefix(def.Name, pattern) {
			continue
		}
		matched++

		cfgs, err := def.Variants()
		if err != nil {
			return Run{}, err
		}

		for _, cfg := range cfgs {
			m, err := s.runVariant(ctx, def, cfg)
			if err != nil {
				s.logger.Error("benchmark failed",
					"name", def.Name, "label", cfg.Label, "error", err)
				m.Error = err.Error()
				if s.metrics != nil {
					s.metrics.RunsFailed.Inc()
				}
			}
			run.Measurements = append(run.Measurements, m)
		}
	}

	if matched == 0 {
		return Run{}, fmt.Errorf("suite: no benchmarks match %q", pattern)
	}
	return run, nil
}

func (s *Suite) runVariant(ctx context.Context, def harness.Definition, cfg harness.Configuration) (Measurement, error) {
	m := Measurement{Name: def.Name, Label: cfg.Label}
	if s.metrics != nil {
		s.metrics.RunsStarted.Inc()
	}

	inst, err := def.Instance(cfg)
	if err != nil {
		return m, err
	}

	s.logger.Info("running benchmark", "name", def.Name, "label", cfg.Label)
	started := time.Now()

	runner := &harness.Runner{Options: s.options, Logger: s.logger}
	samples, err := runner.Run(ctx, inst)
	if err != nil {
		return m, err
	}

	m.Samples = samples
	if s.metrics != nil {
		s.metrics.RunsCompleted.Inc()
		s.metrics.SamplesTaken.Add(float64(len(samples)))
		s.metrics.RunDuration.Observe(time.Since(started).Seconds())
	}
	s.logger.Info("benchmark complete",
		"name", def.Name, "label", cfg.Label, "samples", len(samples))
	return m, nil
}
