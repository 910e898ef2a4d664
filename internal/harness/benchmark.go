package harness

import (
	"context"
	"errors"
	"fmt"
)

// Configuration names one variant of a benchmark. Label identifies the
// variant in reports; Options is opaque to the harness and handed unchanged
// to the benchmark constructor.
type Configuration struct {
	Label   string         `json:"label"`
	Options map[string]any `json:"options"`
}

// DefaultConfigurations returns the single unnamed variant used when a
// definition supplies no generator.
func DefaultConfigurations() []Configuration {
	return []Configuration{{Label: "", Options: map[string]any{}}}
}

// Benchmark is one timed unit of work. Setup runs once before sampling and
// may establish state that Bench reads; Bench is invoked once per sample and
// must not accumulate side effects that bias later samples; Teardown runs
// once after the last sample. A hook may block as long as it needs; the
// runner waits for it to return before moving on.
type Benchmark interface {
	Setup(ctx context.Context) error
	Bench(ctx context.Context) error
	Teardown(ctx context.Context) error
}

// Base is a no-op Benchmark carrying the variant identity. Concrete
// benchmarks embed it and override the hooks they need.
type Base struct {
	Label   string
	Options map[string]any
}

// NewBase copies the variant identity out of a configuration.
func NewBase(cfg Configuration) Base {
	return Base{Label: cfg.Label, Options: cfg.Options}
}

func (Base) Setup(context.Context) error    { return nil }
func (Base) Bench(context.Context) error    { return nil }
func (Base) Teardown(context.Context) error { return nil }

// ErrNoConfigurations reports a variant generator that produced an empty
// sequence, which leaves nothing to run.
var ErrNoConfigurations = errors.New("harness: no configurations")

// Definition ties a benchmark name to its variant generator and constructor.
// Configurations may be nil, in which case the single default variant is
// used. New receives one Configuration and builds the instance for it.
type Definition struct {
	Name           string
	Configurations func() []Configuration
	New            func(cfg Configuration) (Benchmark, error)
}

// Variants resolves the configuration sequence for this definition. An
// explicit generator returning zero configurations is a configuration error
// and surfaces immediately.
func (d Definition) Variants() ([]Configuration, error) {
	if d.Configurations == nil {
		return DefaultConfigurations(), nil
	}
	cfgs := d.Configurations()
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoConfigurations, d.Name)
	}
	return cfgs, nil
}

// Instance constructs the benchmark for one variant.
func (d Definition) Instance(cfg Configuration) (Benchmark, error) {
	if d.New == nil {
		return nil, fmt.Errorf("harness: definition %q has no constructor", d.Name)
	}
	return d.New(cfg)
}
