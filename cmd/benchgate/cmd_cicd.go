package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/benchgate/benchgate/pkg/cicd"
	"github.com/benchgate/benchgate/pkg/ui"
)

// runCICD emits a ready-made CI pipeline template that runs the benchmark
// suite and then gates the build with benchgate check.
func runCICD() {
	fs := flag.NewFlagSet("cicd", flag.ExitOnError)
	platform := fs.String("platform", string(cicd.PlatformGitHubActions), "CI platform: github-actions, gitlab-ci")
	benchCmd := fs.String("bench-command", "", "Benchmark command to run before gating")
	baselinePath := fs.String("baseline", "", "Baseline JSON file path in the pipeline")
	resultsRoot := fs.String("results-root", "", "Criterion output directory in the pipeline")
	runName := fs.String("run-name", "", "Results subdirectory to compare")
	tolerance := fs.Float64("tolerance", 0, "Explicit tolerance in the pipeline (0 defers to baseline metadata)")
	output := fs.String("o", "", "Output file (default: stdout)")

	fs.Parse(os.Args[2:])

	gen := cicd.NewGenerator()
	p := cicd.Platform(*platform)
	if !gen.HasPlatform(p) {
		exitWithUsage(
			fmt.Sprintf("Unsupported platform %q.", *platform),
			"benchgate cicd -platform github-actions|gitlab-ci [-o pipeline.yml]",
		)
	}

	config := cicd.DefaultConfig(p)
	if *benchCmd != "" {
		config.BenchCommand = *benchCmd
	}
	if *baselinePath != "" {
		config.BaselinePath = *baselinePath
	}
	if *resultsRoot != "" {
		config.ResultsRoot = *resultsRoot
	}
	if *runName != "" {
		config.RunName = *runName
	}
	config.Tolerance = *tolerance

	content, err := gen.Generate(config)
	if err != nil {
		exitWithError("Generating template: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(content), 0o644); err != nil {
			exitWithError("Writing template: %v", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Pipeline template written to %s", *output))
		return
	}
	fmt.Print(content)
}
