// Package baseline loads and validates the committed benchmark baseline:
// the reference timings every fresh measurement run is judged against.
package baseline

import (
	"fmt"
	"os"
	"sort"

	"github.com/benchgate/benchgate/pkg/jsonutil"
)

// DefaultTolerance is the allowed actual/target multiplier when neither the
// caller nor the baseline metadata supplies one: measurements may be up to
// 25% slower than baseline before the gate flags a regression.
const DefaultTolerance = 1.25

// Metadata holds auxiliary baseline settings. Tolerance is the only
// recognized key; unknown keys in the document are tolerated and ignored.
type Metadata struct {
	Tolerance *float64 `json:"tolerance,omitempty"`
}

// Baseline is the parsed baseline document. It is loaded once per run and
// never mutated afterwards.
type Baseline struct {
	Metadata   Metadata                      `json:"metadata,omitempty"`
	Benchmarks map[string]map[string]float64 `json:"benchmarks"`
}

// Load reads and parses a baseline JSON file. Any failure here is a
// precondition failure for the whole run: callers abort rather than
// continuing with a partial or guessed baseline.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline %s: %w", path, err)
	}
	return parse(data, path)
}

// parse is split from Load so tests can exercise parsing without the
// filesystem.
func parse(data []byte, path string) (*Baseline, error) {
	var b Baseline
	if err := jsonutil.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}
	if t := b.Metadata.Tolerance; t != nil && *t <= 0 {
		return nil, fmt.Errorf("baseline %s: metadata.tolerance must be positive, got %v", path, *t)
	}
	// A missing benchmarks key means zero comparisons, not an error.
	if b.Benchmarks == nil {
		b.Benchmarks = map[string]map[string]float64{}
	}
	return &b, nil
}

// Groups returns the benchmark group names in lexicographic order.
// Deterministic iteration lives here so every consumer reports in the
// same order.
func (b *Baseline) Groups() []string {
	groups := make([]string, 0, len(b.Benchmarks))
	for g := range b.Benchmarks {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// BenchmarksIn returns the benchmark names within group in lexicographic
// order. An unknown group yields an empty slice.
func (b *Baseline) BenchmarksIn(group string) []string {
	entries := b.Benchmarks[group]
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of (group, benchmark) pairs.
func (b *Baseline) Len() int {
	n := 0
	for _, entries := range b.Benchmarks {
		n += len(entries)
	}
	return n
}

// ResolveTolerance produces the effective tolerance multiplier for a run.
// Precedence, highest first: explicit caller override, the baseline's own
// metadata.tolerance, then DefaultTolerance. Resolved once before any
// comparison and immutable for the remainder of the run.
func ResolveTolerance(override *float64, b *Baseline) float64 {
	if override != nil {
		return *override
	}
	if b != nil && b.Metadata.Tolerance != nil {
		return *b.Metadata.Tolerance
	}
	return DefaultTolerance
}
