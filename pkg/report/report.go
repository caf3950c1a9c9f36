// Package report renders a completed gate run as an uploadable artifact:
// a JSON document for machines and a Markdown summary for CI job pages.
package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/google/uuid"

	"github.com/benchgate/benchgate/pkg/gate"
	"github.com/benchgate/benchgate/pkg/jsonutil"
)

// Summary holds per-status outcome counts.
type Summary struct {
	Total       int `json:"total"`
	OK          int `json:"ok"`
	Regressions int `json:"regressions"`
	Invalid     int `json:"invalid"`
	Missing     int `json:"missing"`
}

// Document is the serialized form of one gate run.
type Document struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Baseline    string         `json:"baseline"`
	ResultsRoot string         `json:"results_root"`
	RunName     string         `json:"run_name"`
	Tolerance   float64        `json:"tolerance"`
	Passed      bool           `json:"passed"`
	Summary     Summary        `json:"summary"`
	Outcomes    []gate.Outcome `json:"outcomes"`
}

// New builds a Document from a finished gate report.
func New(r *gate.Report, baselinePath, resultsRoot string) *Document {
	counts := r.Counts()
	return &Document{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Baseline:    baselinePath,
		ResultsRoot: resultsRoot,
		RunName:     r.RunName,
		Tolerance:   r.Tolerance,
		Passed:      !r.Failed(),
		Summary: Summary{
			Total:       len(r.Outcomes),
			OK:          counts[gate.StatusOK],
			Regressions: counts[gate.StatusRegression],
			Invalid:     counts[gate.StatusInvalid],
			Missing:     counts[gate.StatusMissing],
		},
		Outcomes: r.Outcomes,
	}
}

// WriteJSON writes the indented JSON encoding of the document.
func (d *Document) WriteJSON(w io.Writer) error {
	data, err := jsonutil.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// markdownTemplate renders a job-summary table. Kept as text/template with
// sprig funcs so custom templates can reuse the same func map later.
const markdownTemplate = `# Benchmark gate: {{ if .Passed }}PASS{{ else }}FAIL{{ end }}

- Run: ` + "`{{ .RunName }}`" + ` against ` + "`{{ .Baseline }}`" + `
- Tolerance: {{ printf "%.3f" .Tolerance }}x
- Checked: {{ .Summary.Total }} ({{ .Summary.OK }} ok, {{ .Summary.Regressions }} regressed, {{ .Summary.Invalid }} invalid, {{ .Summary.Missing }} missing)
- Generated: {{ .GeneratedAt.Format "2006-01-02 15:04:05 MST" }} ({{ .ID | trunc 8 }})

| Group | Benchmark | Status | Actual (ns) | Baseline (ns) | Ratio |
|-------|-----------|--------|-------------|---------------|-------|
{{- range .Outcomes }}
| {{ .Group }} | {{ .Benchmark }} | {{ .Status }} | {{ if eq .Status "MISSING" }}-{{ else }}{{ printf "%.3f" .Actual }}{{ end }} | {{ printf "%.3f" .Target }} | {{ if eq .Status "MISSING" }}-{{ else }}{{ printf "%.3f" .Ratio }}{{ end }} |
{{- end }}
`

// WriteMarkdown renders the Markdown summary of the document.
func (d *Document) WriteMarkdown(w io.Writer) error {
	tmpl, err := template.New("markdown").Funcs(sprig.TxtFuncMap()).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	if err := tmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
