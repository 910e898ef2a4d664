package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Sample is one measured Bench duration in milliseconds.
type Sample float64

// SampleSequence holds samples in collection order. Order is meaningful
// downstream (warm-up and drift detection) even though the harness itself
// never interprets it.
type SampleSequence []Sample

// Sum returns the cumulative duration of the sequence in milliseconds.
func (s SampleSequence) Sum() float64 {
	var total float64
	for _, v := range s {
		total += float64(v)
	}
	return total
}

// Stopping-rule defaults. Sampling continues until at least DefaultTimeBudget
// of measured time has accumulated AND strictly more than DefaultMinSamples
// samples exist. The floor leaves room for 20 regression observations at a
// batching factor of ~10.
const (
	DefaultTimeBudget = 300 * time.Millisecond
	DefaultMinSamples = 210
)

// maxClockFaults bounds consecutive negative-delta retakes before the run
// is declared broken instead of spinning on a faulty clock.
const maxClockFaults = 3

// ErrClockFault reports repeated non-monotonic timer readings.
var ErrClockFault = errors.New("harness: clock went backwards")

// ErrSampleCeiling reports a run that hit Options.MaxSamples before the
// stopping rule was satisfied.
var ErrSampleCeiling = errors.New("harness: sample ceiling reached")

// Options tunes the stopping rule. Zero values select the defaults above;
// MaxSamples is a defensive ceiling and is off (unlimited) by default.
type Options struct {
	TimeBudget time.Duration
	MinSamples int
	MaxSamples int
}

func (o Options) withDefaults() Options {
	if o.TimeBudget <= 0 {
		o.TimeBudget = DefaultTimeBudget
	}
	if o.MinSamples <= 0 {
		o.MinSamples = DefaultMinSamples
	}
	return o
}

// HookError identifies which lifecycle hook failed and at which sample
// index. Sample is -1 when the failure happened outside the sampling loop
// (setup, or teardown after a clean run).
type HookError struct {
	Hook   string
	Sample int
	Err    error
}

func (e *HookError) Error() string {
	if e.Sample < 0 {
		return fmt.Sprintf("harness: %s failed: %v", e.Hook, e.Err)
	}
	return fmt.Sprintf("harness: %s failed at sample %d: %v", e.Hook, e.Sample, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Runner executes one benchmark instance: setup, then the adaptive sampling
// loop, then teardown. A zero Runner is usable and runs with the default
// stopping rule, the process clock and the default logger.
type Runner struct {
	Options Options
	Clock   Clock
	Logger  *slog.Logger
}

// Run drives b through its full lifecycle and returns the ordered sample
// sequence. Hook failures are fatal to the run and come back as *HookError;
// teardown is still attempted after a failed setup or bench so resources
// are released, with the original failure staying the reported error.
//
// Everything is strictly sequential: sample i+1 is not timed until sample
// i's Bench call has returned and been recorded, and Teardown does not
// start until the last sample has been recorded.
func (r *Runner) Run(ctx context.Context, b Benchmark) (SampleSequence, error) {
	opts := r.Options.withDefaults()
	clock := r.Clock
	if clock == nil {
		clock = systemClock{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := b.Setup(ctx); err != nil {
		r.cleanup(ctx, b, logger)
		return nil, &HookError{Hook: "setup", Sample: -1, Err: err}
	}

	var (
		samples SampleSequence
		total   time.Duration
		faults  int
	)
	for {
		start := clock.Now()
		if err := b.Bench(ctx); err != nil {
			r.cleanup(ctx, b, logger)
			return nil, &HookError{Hook: "bench", Sample: len(samples), Err: err}
		}
		elapsed := clock.Now().Sub(start)
		if elapsed < 0 {
			// Non-monotonic reading: the sample is corrupt. Retake it
			// rather than record a negative duration.
			faults++
			logger.Warn("discarding non-monotonic sample",
				"sample", len(samples), "elapsed", elapsed)
			if faults >= maxClockFaults {
				r.cleanup(ctx, b, logger)
				return nil, &HookError{Hook: "bench", Sample: len(samples), Err: ErrClockFault}
			}
			continue
		}
		faults = 0

		samples = append(samples, Sample(float64(elapsed)/float64(time.Millisecond)))
		total += elapsed

		if total >= opts.TimeBudget && len(samples) > opts.MinSamples {
			break
		}
		if opts.MaxSamples > 0 && len(samples) >= opts.MaxSamples {
			r.cleanup(ctx, b, logger)
			return nil, &HookError{Hook: "bench", Sample: len(samples), Err: ErrSampleCeiling}
		}
	}

	if err := b.Teardown(ctx); err != nil {
		return nil, &HookError{Hook: "teardown", Sample: -1, Err: err}
	}

	logger.Debug("run complete", "samples", len(samples), "elapsed", total)
	return samples, nil
}

// cleanup tears the instance down after a failure. The teardown error, if
// any, is logged and swallowed so the original failure stays visible.
func (r *Runner) cleanup(ctx context.Context, b Benchmark, logger *slog.Logger) {
	if err := b.Teardown(ctx); err != nil {
		logger.Warn("teardown failed during cleanup", "error", err)
	}
}
