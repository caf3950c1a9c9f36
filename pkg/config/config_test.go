package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	s := Defaults()
	assert.Equal(t, DefaultBaselinePath, s.Baseline)
	assert.Equal(t, DefaultResultsRoot, s.ResultsRoot)
	assert.Equal(t, "current", s.RunName)
	assert.Nil(t, s.Tolerance)
	assert.Equal(t, "github", s.Annotations)
	assert.Equal(t, "json", s.Format)
}

func TestLoadFile_Full(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
baseline: benches/baselines/nightly.json
results_root: build/criterion
run_name: nightly
tolerance: 1.1
annotations: azure
format: json
`)
	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "benches/baselines/nightly.json", f.Baseline)
	assert.Equal(t, "build/criterion", f.ResultsRoot)
	assert.Equal(t, "nightly", f.RunName)
	require.NotNil(t, f.Tolerance)
	assert.Equal(t, 1.1, *f.Tolerance)
	assert.Equal(t, "azure", f.Annotations)
	assert.Equal(t, "json", f.Format)
}

func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadFile("/nonexistent/benchgate.yaml")
	assert.Error(t, err)
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "baseline: [unclosed")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_RejectsNonPositiveTolerance(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "tolerance: -0.5")
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "tolerance must be positive")
}

func TestApply_FileOverridesDefaults(t *testing.T) {
	t.Parallel()
	tol := 1.4
	s := Defaults().Apply(&File{
		ResultsRoot: "out/criterion",
		Tolerance:   &tol,
	})
	// Set fields win, unset fields keep their defaults.
	assert.Equal(t, "out/criterion", s.ResultsRoot)
	require.NotNil(t, s.Tolerance)
	assert.Equal(t, 1.4, *s.Tolerance)
	assert.Equal(t, DefaultBaselinePath, s.Baseline)
	assert.Equal(t, DefaultRunName, s.RunName)
}

func TestApply_NilFileIsNoop(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Defaults(), Defaults().Apply(nil))
}
