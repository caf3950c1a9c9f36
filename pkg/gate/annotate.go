package gate

import "fmt"

// AnnotationFormat selects the machine-recognizable error-line syntax of
// the CI system surfacing the gate's failures.
type AnnotationFormat string

const (
	// AnnotationGitHub emits GitHub Actions workflow commands.
	AnnotationGitHub AnnotationFormat = "github"
	// AnnotationAzure emits Azure DevOps logging commands.
	AnnotationAzure AnnotationFormat = "azure"
	// AnnotationPlain emits an "error:" prefix for log scrapers.
	AnnotationPlain AnnotationFormat = "plain"
)

// Valid returns true if the format is recognized.
func (f AnnotationFormat) Valid() bool {
	switch f {
	case AnnotationGitHub, AnnotationAzure, AnnotationPlain:
		return true
	default:
		return false
	}
}

// Annotate wraps a failure message in the format's error-line syntax.
func Annotate(f AnnotationFormat, message string) string {
	switch f {
	case AnnotationAzure:
		return fmt.Sprintf("##vso[task.logissue type=error]%s", message)
	case AnnotationPlain:
		return fmt.Sprintf("error: %s", message)
	default:
		return fmt.Sprintf("::error ::%s", message)
	}
}

// Annotations returns one annotation line per failure, in comparison
// order. Emitted after the full pass so every failure surfaces as a
// distinct CI annotation.
func (r *Report) Annotations(f AnnotationFormat) []string {
	var lines []string
	for _, o := range r.Failures() {
		lines = append(lines, Annotate(f, o.Message))
	}
	return lines
}
