// Package cicd generates CI pipeline templates that run a benchmark suite
// and then gate the build with benchgate.
package cicd

import (
	"bytes"
	"fmt"
	"text/template"
)

// Platform represents a CI platform.
type Platform string

const (
	PlatformGitHubActions Platform = "github-actions"
	PlatformGitLabCI      Platform = "gitlab-ci"
)

// TemplateConfig configures the generated pipeline.
type TemplateConfig struct {
	Platform     Platform `json:"platform"`
	BenchCommand string   `json:"bench_command"` // command producing the Criterion output
	BaselinePath string   `json:"baseline_path"`
	ResultsRoot  string   `json:"results_root"`
	RunName      string   `json:"run_name"`
	Tolerance    float64  `json:"tolerance"`     // 0 means defer to baseline metadata
	UploadReport bool     `json:"upload_report"` // archive the JSON run report
	Branches     []string `json:"branches"`
	OnPush       bool     `json:"on_push"`
	OnPullReq    bool     `json:"on_pull_request"`
	Version      string   `json:"benchgate_version"`
}

// DefaultConfig returns a default pipeline configuration for a platform.
func DefaultConfig(platform Platform) *TemplateConfig {
	return &TemplateConfig{
		Platform:     platform,
		BenchCommand: "cargo bench --workspace",
		BaselinePath: "benches/baselines/ci.json",
		ResultsRoot:  "target/criterion",
		RunName:      "current",
		UploadReport: true,
		Branches:     []string{"main"},
		OnPush:       true,
		OnPullReq:    true,
		Version:      "latest",
	}
}

// Generator generates CI pipeline templates.
type Generator struct {
	templates map[Platform]*template.Template
}

// NewGenerator creates a generator with all built-in templates registered.
func NewGenerator() *Generator {
	g := &Generator{templates: make(map[Platform]*template.Template)}
	g.templates[PlatformGitHubActions] = template.Must(template.New("github-actions").Parse(githubActionsTemplate))
	g.templates[PlatformGitLabCI] = template.Must(template.New("gitlab-ci").Parse(gitlabCITemplate))
	return g
}

// Generate renders the pipeline template for the configured platform.
func (g *Generator) Generate(config *TemplateConfig) (string, error) {
	tmpl, ok := g.templates[config.Platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", config.Platform)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// ListPlatforms returns all supported platforms.
func (g *Generator) ListPlatforms() []Platform {
	return []Platform{PlatformGitHubActions, PlatformGitLabCI}
}

// HasPlatform checks if a platform is supported.
func (g *Generator) HasPlatform(platform Platform) bool {
	_, ok := g.templates[platform]
	return ok
}

const githubActionsTemplate = `# Benchmark regression gate with benchgate
# Auto-generated CI template

name: Benchmark Gate

on:
{{- if .OnPush }}
  push:
    branches:
{{- range .Branches }}
      - {{ . }}
{{- end }}
{{- end }}
{{- if .OnPullReq }}
  pull_request:
    branches:
{{- range .Branches }}
      - {{ . }}
{{- end }}
{{- end }}
  workflow_dispatch:

jobs:
  benchmark-gate:
    name: Benchmark Gate
    runs-on: ubuntu-latest

    steps:
      - name: Checkout
        uses: actions/checkout@v4

      - name: Install benchgate
        run: go install github.com/benchgate/benchgate/cmd/benchgate@{{ .Version }}

      - name: Run benchmarks
        run: {{ .BenchCommand }}

      - name: Gate against baseline
        run: |
          benchgate check \
            -baseline {{ .BaselinePath }} \
            -results-root {{ .ResultsRoot }} \
            -run-name {{ .RunName }} \
{{- if .Tolerance }}
            -tolerance {{ .Tolerance }} \
{{- end }}
{{- if .UploadReport }}
            -format json -o benchgate-report.json \
{{- end }}
            -annotations github

{{- if .UploadReport }}
      - name: Upload gate report
        if: always()
        uses: actions/upload-artifact@v4
        with:
          name: benchgate-report
          path: benchgate-report.json
          retention-days: 30
{{- end }}
`

const gitlabCITemplate = `# Benchmark regression gate with benchgate
# Auto-generated CI template

stages:
  - benchmark

benchmark-gate:
  stage: benchmark
  image: golang:1.24
{{- if or .OnPush .OnPullReq }}
  rules:
{{- if .OnPush }}
    - if: $CI_COMMIT_BRANCH
      when: always
{{- end }}
{{- if .OnPullReq }}
    - if: $CI_PIPELINE_SOURCE == "merge_request_event"
      when: always
{{- end }}
{{- end }}

  before_script:
    - go install github.com/benchgate/benchgate/cmd/benchgate@{{ .Version }}

  script:
    - {{ .BenchCommand }}
    - |
      benchgate check \
        -baseline {{ .BaselinePath }} \
        -results-root {{ .ResultsRoot }} \
        -run-name {{ .RunName }} \
{{- if .Tolerance }}
        -tolerance {{ .Tolerance }} \
{{- end }}
{{- if .UploadReport }}
        -format json -o benchgate-report.json \
{{- end }}
        -annotations plain

{{- if .UploadReport }}
  artifacts:
    when: always
    paths:
      - benchgate-report.json
    expire_in: 30 days
{{- end }}
`
