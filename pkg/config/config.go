// Package config holds the gate's run settings and the optional YAML
// config file carrying the same knobs as the check command's flags.
// Precedence is flags > config file > built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in defaults, matching the layout Criterion produces and the
// conventional in-repo baseline location.
const (
	DefaultBaselinePath = "benches/baselines/ci.json"
	DefaultResultsRoot  = "target/criterion"
	DefaultRunName      = "current"
	DefaultAnnotations  = "github"
	DefaultFormat       = "json" // report artifact format
)

// Settings is the fully resolved configuration for one gate run.
type Settings struct {
	Baseline    string
	ResultsRoot string
	RunName     string
	Tolerance   *float64 // nil means defer to baseline metadata / default
	Annotations string
	Format      string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Baseline:    DefaultBaselinePath,
		ResultsRoot: DefaultResultsRoot,
		RunName:     DefaultRunName,
		Annotations: DefaultAnnotations,
		Format:      DefaultFormat,
	}
}

// File is the YAML config document. Zero-valued fields are treated as
// absent and leave the lower-precedence setting in place.
type File struct {
	Baseline    string   `yaml:"baseline,omitempty"`
	ResultsRoot string   `yaml:"results_root,omitempty"`
	RunName     string   `yaml:"run_name,omitempty"`
	Tolerance   *float64 `yaml:"tolerance,omitempty"`
	Annotations string   `yaml:"annotations,omitempty"`
	Format      string   `yaml:"format,omitempty"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if f.Tolerance != nil && *f.Tolerance <= 0 {
		return nil, fmt.Errorf("config %s: tolerance must be positive, got %v", path, *f.Tolerance)
	}
	return &f, nil
}

// Apply overlays the file's set fields onto s and returns the result.
func (s Settings) Apply(f *File) Settings {
	if f == nil {
		return s
	}
	if f.Baseline != "" {
		s.Baseline = f.Baseline
	}
	if f.ResultsRoot != "" {
		s.ResultsRoot = f.ResultsRoot
	}
	if f.RunName != "" {
		s.RunName = f.RunName
	}
	if f.Tolerance != nil {
		s.Tolerance = f.Tolerance
	}
	if f.Annotations != "" {
		s.Annotations = f.Annotations
	}
	if f.Format != "" {
		s.Format = f.Format
	}
	return s
}
