// Package gate compares freshly measured benchmark estimates against a
// stored baseline and aggregates the outcomes into a CI pass/fail report.
//
// Per-benchmark failures (missing file, bad JSON, degenerate ratio) are
// collected, never thrown on first occurrence: a single broken benchmark
// must not hide regressions elsewhere. The final status is binary: any
// failure fails the run.
package gate

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/benchgate/benchgate/pkg/baseline"
	"github.com/benchgate/benchgate/pkg/estimate"
)

// Status classifies the outcome of one (group, benchmark) comparison.
type Status string

const (
	StatusOK         Status = "OK"
	StatusRegression Status = "REGRESSION"
	StatusInvalid    Status = "INVALID"
	StatusMissing    Status = "MISSING"
)

// Outcome is the result for a single (group, benchmark) pair.
type Outcome struct {
	Group     string  `json:"group"`
	Benchmark string  `json:"benchmark"`
	Status    Status  `json:"status"`
	Actual    float64 `json:"actual,omitempty"`
	Target    float64 `json:"target,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
	Limit     float64 `json:"limit,omitempty"`
	Path      string  `json:"path,omitempty"`
	Message   string  `json:"message"`
}

// Failed reports whether this outcome counts against the run.
func (o Outcome) Failed() bool {
	return o.Status != StatusOK
}

// Options configures a single gate run. All fields are resolved before the
// walk starts and stay immutable for its duration.
type Options struct {
	Baseline    *baseline.Baseline
	ResultsRoot string
	RunName     string
	Tolerance   float64

	// Progress receives one line per OK outcome as it is found, giving
	// streaming feedback even when a later benchmark fails. Nil discards.
	Progress io.Writer

	// EstimateFile overrides the fixed per-benchmark results filename.
	// Empty means estimate.Filename.
	EstimateFile string
}

// Report aggregates the outcomes of one gate run.
type Report struct {
	Tolerance float64   `json:"tolerance"`
	RunName   string    `json:"run_name"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Failed reports whether any benchmark resolved to a non-OK outcome.
// An empty baseline yields a vacuous pass.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}

// Failures returns the non-OK outcomes in comparison order.
func (r *Report) Failures() []Outcome {
	var failures []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failures = append(failures, o)
		}
	}
	return failures
}

// Counts returns the number of outcomes per status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// Check walks every (group, benchmark) pair in the baseline in sorted
// order (groups lexicographically, then benchmarks within each group)
// and produces one Outcome per pair. Ordering is deterministic so report
// output is reproducible and diffable across runs.
func Check(opts Options) *Report {
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	estimateFile := opts.EstimateFile
	if estimateFile == "" {
		estimateFile = estimate.Filename
	}

	report := &Report{Tolerance: opts.Tolerance, RunName: opts.RunName}
	for _, group := range opts.Baseline.Groups() {
		for _, bench := range opts.Baseline.BenchmarksIn(group) {
			target := opts.Baseline.Benchmarks[group][bench]
			path := filepath.Join(opts.ResultsRoot, group, bench, opts.RunName, estimateFile)
			o := compareOne(group, bench, target, path, opts.Tolerance)
			if o.Status == StatusOK {
				fmt.Fprintln(progress, o.Message)
			}
			report.Outcomes = append(report.Outcomes, o)
		}
	}
	return report
}

// compareOne resolves a single benchmark against its target. Extraction
// failures are mapped to INVALID rather than propagated: a corrupt results
// file is a finding about that benchmark, not grounds to abort the run.
func compareOne(group, bench string, target float64, path string, tolerance float64) Outcome {
	o := Outcome{Group: group, Benchmark: bench, Target: target, Limit: tolerance, Path: path}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		o.Status = StatusMissing
		o.Message = fmt.Sprintf("missing results for %s/%s: %s not found", group, bench, path)
		return o
	}

	actual, err := estimate.Load(path)
	if err != nil {
		o.Status = StatusInvalid
		o.Message = fmt.Sprintf("invalid results for %s/%s: %v", group, bench, err)
		return o
	}
	o.Actual = actual

	ratio := actual / target
	o.Ratio = ratio
	switch {
	case math.IsNaN(ratio) || math.IsInf(ratio, 0):
		o.Status = StatusInvalid
		o.Message = fmt.Sprintf("invalid ratio for %s/%s: actual=%g baseline=%g", group, bench, actual, target)
	case ratio > tolerance:
		o.Status = StatusRegression
		o.Message = fmt.Sprintf("regression detected for %s/%s: actual %.3f ns exceeds baseline %.3f ns by %.3fx (limit %.3fx)",
			group, bench, actual, target, ratio, tolerance)
	default:
		o.Status = StatusOK
		o.Message = fmt.Sprintf("ok %s/%s: actual %.3f ns vs baseline %.3f ns (%.3fx)",
			group, bench, actual, target, ratio)
	}
	return o
}
