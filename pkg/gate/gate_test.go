package gate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benchgate/benchgate/pkg/baseline"
)

// writeEstimate lays out a Criterion-style results tree:
// root/group/bench/run/estimates.json with the given median.
func writeEstimate(t *testing.T, root, group, bench, run, body string) {
	t.Helper()
	dir := filepath.Join(root, group, bench, run)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "estimates.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testBaseline(benchmarks map[string]map[string]float64) *baseline.Baseline {
	return &baseline.Baseline{Benchmarks: benchmarks}
}

func TestCheck_WithinTolerance(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 110.0}}`)

	var progress bytes.Buffer
	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
		Progress:    &progress,
	})

	if r.Failed() {
		t.Fatalf("run failed, outcomes: %+v", r.Outcomes)
	}
	if len(r.Outcomes) != 1 || r.Outcomes[0].Status != StatusOK {
		t.Fatalf("Outcomes = %+v, want single OK", r.Outcomes)
	}
	want := "ok g/b1: actual 110.000 ns vs baseline 100.000 ns (1.100x)"
	if got := strings.TrimSpace(progress.String()); got != want {
		t.Errorf("progress line = %q, want %q", got, want)
	}
}

func TestCheck_Regression(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 140.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})

	if !r.Failed() {
		t.Fatal("run should fail on regression")
	}
	o := r.Outcomes[0]
	if o.Status != StatusRegression {
		t.Fatalf("Status = %v, want REGRESSION", o.Status)
	}
	want := "regression detected for g/b1: actual 140.000 ns exceeds baseline 100.000 ns by 1.400x (limit 1.250x)"
	if o.Message != want {
		t.Errorf("Message = %q, want %q", o.Message, want)
	}
}

func TestCheck_ExactlyAtToleranceIsOK(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 125.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   1.25,
	})
	if r.Failed() {
		t.Error("ratio == tolerance should pass; only ratio > tolerance regresses")
	}
}

func TestCheck_ZeroTargetIsInvalidNotRegression(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 50.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 0.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})
	o := r.Outcomes[0]
	if o.Status != StatusInvalid {
		t.Fatalf("Status = %v, want INVALID for infinite ratio", o.Status)
	}
	if !strings.Contains(o.Message, "invalid ratio for g/b1") {
		t.Errorf("Message = %q, want invalid-ratio wording", o.Message)
	}
	if !r.Failed() {
		t.Error("INVALID should fail the run")
	}
}

func TestCheck_ZeroOverZeroIsInvalid(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 0.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 0.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})
	if r.Outcomes[0].Status != StatusInvalid {
		t.Errorf("Status = %v, want INVALID for NaN ratio", r.Outcomes[0].Status)
	}
}

func TestCheck_MissingResultsFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})
	o := r.Outcomes[0]
	if o.Status != StatusMissing {
		t.Fatalf("Status = %v, want MISSING", o.Status)
	}
	wantPath := filepath.Join(root, "g", "b1", "current", "estimates.json")
	if !strings.Contains(o.Message, wantPath) {
		t.Errorf("Message = %q, want expected path %q included", o.Message, wantPath)
	}
	if !r.Failed() {
		t.Error("MISSING should fail the run")
	}
}

func TestCheck_DirectoryAtEstimatePathIsMissing(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	// estimates.json exists but is a directory, not a regular file.
	if err := os.MkdirAll(filepath.Join(root, "g", "b1", "current", "estimates.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})
	if r.Outcomes[0].Status != StatusMissing {
		t.Errorf("Status = %v, want MISSING for non-regular file", r.Outcomes[0].Status)
	}
}

func TestCheck_CorruptEstimateIsInvalidAndDoesNotAbort(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "bad", "current", `{"median": {`)
	writeEstimate(t, root, "g", "good", "current", `{"median": {"point_estimate": 90.0}}`)

	var progress bytes.Buffer
	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"bad": 100.0, "good": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
		Progress:    &progress,
	})

	if len(r.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2 (bad benchmark must not short-circuit)", len(r.Outcomes))
	}
	if r.Outcomes[0].Status != StatusInvalid {
		t.Errorf("g/bad Status = %v, want INVALID", r.Outcomes[0].Status)
	}
	if r.Outcomes[1].Status != StatusOK {
		t.Errorf("g/good Status = %v, want OK", r.Outcomes[1].Status)
	}
	if !strings.Contains(progress.String(), "ok g/good") {
		t.Errorf("progress = %q, want streamed ok line for g/good", progress.String())
	}
}

func TestCheck_DeterministicOrdering(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, group := range []string{"a", "b"} {
		for _, bench := range []string{"x", "y"} {
			writeEstimate(t, root, group, bench, "current", `{"median": {"point_estimate": 100.0}}`)
		}
	}

	r := Check(Options{
		Baseline: testBaseline(map[string]map[string]float64{
			"b": {"y": 100.0, "x": 100.0},
			"a": {"y": 100.0, "x": 100.0},
		}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})

	want := []string{"a/x", "a/y", "b/x", "b/y"}
	if len(r.Outcomes) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(r.Outcomes), len(want))
	}
	for i, o := range r.Outcomes {
		if got := o.Group + "/" + o.Benchmark; got != want[i] {
			t.Errorf("Outcomes[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestCheck_OkAlongsideMissingStillFails(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "current", `{"median": {"point_estimate": 110.0}}`)
	// g/b2 in the baseline has no results on disk.

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0, "b2": 200.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})

	if !r.Failed() {
		t.Error("run should fail when any benchmark is missing")
	}
	counts := r.Counts()
	if counts[StatusOK] != 1 || counts[StatusMissing] != 1 {
		t.Errorf("Counts() = %v, want 1 OK and 1 MISSING", counts)
	}
	if got := len(r.Failures()); got != 1 {
		t.Errorf("len(Failures()) = %d, want 1", got)
	}
}

func TestCheck_EmptyBaselinePassesVacuously(t *testing.T) {
	t.Parallel()
	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{}),
		ResultsRoot: t.TempDir(),
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})
	if r.Failed() {
		t.Error("empty baseline should pass")
	}
	if len(r.Outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(r.Outcomes))
	}
}

func TestCheck_RunNameSelectsSubdirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "b1", "base", `{"median": {"point_estimate": 100.0}}`)
	writeEstimate(t, root, "g", "b1", "new", `{"median": {"point_estimate": 500.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"b1": 100.0}}),
		ResultsRoot: root,
		RunName:     "new",
		Tolerance:   baseline.DefaultTolerance,
	})
	if r.Outcomes[0].Status != StatusRegression {
		t.Errorf("Status = %v, want REGRESSION from the %q run directory", r.Outcomes[0].Status, "new")
	}
}

func TestAnnotate_Formats(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format AnnotationFormat
		want   string
	}{
		{AnnotationGitHub, "::error ::boom"},
		{AnnotationAzure, "##vso[task.logissue type=error]boom"},
		{AnnotationPlain, "error: boom"},
	}
	for _, tt := range tests {
		if got := Annotate(tt.format, "boom"); got != tt.want {
			t.Errorf("Annotate(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestAnnotationFormat_Valid(t *testing.T) {
	t.Parallel()
	for _, f := range []AnnotationFormat{AnnotationGitHub, AnnotationAzure, AnnotationPlain} {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if AnnotationFormat("jenkins").Valid() {
		t.Error("unknown format should be invalid")
	}
}

func TestReport_AnnotationsOnePerFailure(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeEstimate(t, root, "g", "ok", "current", `{"median": {"point_estimate": 100.0}}`)
	writeEstimate(t, root, "g", "slow", "current", `{"median": {"point_estimate": 400.0}}`)

	r := Check(Options{
		Baseline:    testBaseline(map[string]map[string]float64{"g": {"ok": 100.0, "slow": 100.0, "gone": 100.0}}),
		ResultsRoot: root,
		RunName:     "current",
		Tolerance:   baseline.DefaultTolerance,
	})

	lines := r.Annotations(AnnotationGitHub)
	if len(lines) != 2 {
		t.Fatalf("got %d annotation lines, want 2: %v", len(lines), lines)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "::error ::") {
			t.Errorf("annotation %q missing GitHub error prefix", line)
		}
	}
}
