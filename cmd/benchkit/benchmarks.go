package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"math/rand"
	"sort"

	"benchkit/internal/harness"
	"benchkit/internal/suite"
)

// Built-in reference benchmarks. They exist so the binary exercises the
// whole pipeline end to end and give run history something stable to track.

func registerBuiltins(s *suite.Suite) {
	s.Register(hashDefinition())
	s.Register(jsonDefinition())
	s.Register(sortDefinition())
}

func optInt(options map[string]any, key string, fallback int) int {
	if v, ok := options[key].(int); ok {
		return v
	}
	return fallback
}

// Sinks keep the compiler from eliding the measured work.
var (
	hashSink [sha256.Size]byte
	jsonSink []byte
	sortSink int
)

type hashBench struct {
	harness.Base
	payload []byte
}

func (b *hashBench) Setup(context.Context) error {
	payload := make([]byte, optInt(b.Options, "size", 1<<10))
	rand.New(rand.NewSource(42)).Read(payload)
	b.payload = payload
	return nil
}

func (b *hashBench) Bench(context.Context) error {
	hashSink = sha256.Sum256(b.payload)
	return nil
}

func hashDefinition() harness.Definition {
	return harness.Definition{
		Name: "hash/sha256",
		Configurations: func() []harness.Configuration {
			return []harness.Configuration{
				{Label: "1KiB", Options: map[string]any{"size": 1 << 10}},
				{Label: "64KiB", Options: map[string]any{"size": 1 << 16}},
			}
		},
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return &hashBench{Base: harness.NewBase(cfg)}, nil
		},
	}
}

type jsonRecord struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

type jsonBench struct {
	harness.Base
	records []jsonRecord
}

func (b *jsonBench) Setup(context.Context) error {
	n := optInt(b.Options, "records", 100)
	records := make([]jsonRecord, n)
	for i := range records {
		records[i] = jsonRecord{
			ID:    i,
			Name:  "record",
			Tags:  []string{"alpha", "beta"},
			Score: float64(i) * 1.5,
		}
	}
	b.records = records
	return nil
}

func (b *jsonBench) Bench(context.Context) error {
	data, err := json.Marshal(b.records)
	if err != nil {
		return err
	}
	jsonSink = data
	return nil
}

func jsonDefinition() harness.Definition {
	return harness.Definition{
		Name: "json/marshal",
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return &jsonBench{Base: harness.NewBase(cfg)}, nil
		},
	}
}

type sortBench struct {
	harness.Base
	base []int
}

func (b *sortBench) Setup(context.Context) error {
	n := optInt(b.Options, "n", 1000)
	rnd := rand.New(rand.NewSource(42))
	b.base = make([]int, n)
	for i := range b.base {
		b.base[i] = rnd.Int()
	}
	return nil
}

// Bench sorts a fresh copy each time: the base slice set up once is only
// ever read, so earlier samples cannot bias later ones with pre-sorted
// input.
func (b *sortBench) Bench(context.Context) error {
	scratch := make([]int, len(b.base))
	copy(scratch, b.base)
	sort.Ints(scratch)
	sortSink = scratch[0]
	return nil
}

func sortDefinition() harness.Definition {
	return harness.Definition{
		Name: "sort/ints",
		Configurations: func() []harness.Configuration {
			return []harness.Configuration{
				{Label: "small", Options: map[string]any{"n": 100}},
				{Label: "large", Options: map[string]any{"n": 10000}},
			}
		},
		New: func(cfg harness.Configuration) (harness.Benchmark, error) {
			return &sortBench{Base: harness.NewBase(cfg)}, nil
		},
	}
}
