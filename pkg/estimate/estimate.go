// Package estimate extracts the median point estimate from a single
// Criterion estimates.json file.
package estimate

import (
	"fmt"
	"os"

	"github.com/benchgate/benchgate/pkg/jsonutil"
)

// Filename is the fixed name Criterion gives its per-benchmark estimate
// files under <results-root>/<group>/<benchmark>/<run>/.
const Filename = "estimates.json"

// document mirrors the slice of the Criterion estimates schema the gate
// consumes. Everything else in the file is ignored.
type document struct {
	Median *struct {
		PointEstimate *float64 `json:"point_estimate"`
	} `json:"median"`
}

// Load reads path and returns its median.point_estimate value.
//
// Errors name the offending file so a CI log pinpoints the benchmark whose
// output is broken. The caller treats the failure as per-benchmark, not
// run-fatal: one corrupt estimates file must not hide regressions elsewhere.
func Load(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading estimates file %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (float64, error) {
	var doc document
	if err := jsonutil.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("invalid estimates file %s: %w", path, err)
	}
	if doc.Median == nil || doc.Median.PointEstimate == nil {
		return 0, fmt.Errorf("invalid estimates file %s: missing median.point_estimate", path)
	}
	return *doc.Median.PointEstimate, nil
}
