package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/benchgate/benchgate/pkg/baseline"
	"github.com/benchgate/benchgate/pkg/config"
	"github.com/benchgate/benchgate/pkg/gate"
	"github.com/benchgate/benchgate/pkg/report"
	"github.com/benchgate/benchgate/pkg/ui"
)

// checkFlags holds the parsed flag values for the check command.
type checkFlags struct {
	baseline    *string
	resultsRoot *string
	runName     *string
	tolerance   *float64
	configPath  *string
	annotations *string
	format      *string
	output      *string
	silent      *bool
	noColor     *bool
}

func newCheckFlags(fs *flag.FlagSet) *checkFlags {
	return &checkFlags{
		baseline:    fs.String("baseline", config.DefaultBaselinePath, "Baseline JSON file"),
		resultsRoot: fs.String("results-root", config.DefaultResultsRoot, "Directory containing Criterion output"),
		runName:     fs.String("run-name", config.DefaultRunName, "Results subdirectory to compare"),
		tolerance:   fs.Float64("tolerance", 0, "Override tolerance multiplier (default: baseline metadata, then 1.25)"),
		configPath:  fs.String("config", "", "YAML config file (flags win over file values)"),
		annotations: fs.String("annotations", config.DefaultAnnotations, "CI annotation format: github, azure, plain"),
		format:      fs.String("format", config.DefaultFormat, "Report artifact format: json, markdown"),
		output:      fs.String("o", "", "Write a run report artifact to this file"),
		silent:      fs.Bool("silent", false, "Suppress banner and summary chrome"),
		noColor:     fs.Bool("no-color", false, "Disable colored output"),
	}
}

// overlay applies flags the user passed explicitly on top of settings, so
// flags win over config file values while untouched flags leave the file
// values alone.
func (cf *checkFlags) overlay(fs *flag.FlagSet, settings config.Settings) config.Settings {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "baseline":
			settings.Baseline = *cf.baseline
		case "results-root":
			settings.ResultsRoot = *cf.resultsRoot
		case "run-name":
			settings.RunName = *cf.runName
		case "tolerance":
			settings.Tolerance = cf.tolerance
		case "annotations":
			settings.Annotations = *cf.annotations
		case "format":
			settings.Format = *cf.format
		}
	})
	return settings
}

// runCheck executes the check command: loads the committed baseline,
// compares every benchmark's fresh estimate against it, and exits nonzero
// when anything regressed, produced a degenerate ratio, or went missing.
//
// OK lines stream to stdout as they are found; failures are batched and
// emitted as CI annotation lines after the full pass so each one surfaces
// as a distinct annotation.
func runCheck() {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	flags := newCheckFlags(fs)

	fs.Parse(os.Args[2:])

	ui.SetSilent(*flags.silent)
	ui.SetNoColor(*flags.noColor)

	settings := config.Defaults()
	if *flags.configPath != "" {
		file, err := config.LoadFile(*flags.configPath)
		if err != nil {
			exitWithError("Loading config: %v", err)
		}
		settings = settings.Apply(file)
	}
	settings = flags.overlay(fs, settings)

	annotationFormat := gate.AnnotationFormat(settings.Annotations)
	if !annotationFormat.Valid() {
		exitWithError("Unknown annotation format %q. Supported: github, azure, plain", settings.Annotations)
	}
	switch settings.Format {
	case "json", "markdown":
	default:
		exitWithError("Unknown report format %q. Supported: json, markdown", settings.Format)
	}
	if settings.Tolerance != nil && *settings.Tolerance <= 0 {
		exitWithError("Tolerance must be positive, got %v", *settings.Tolerance)
	}

	ui.PrintBanner()
	ui.PrintSection("Benchmark Gate")

	b, err := baseline.Load(settings.Baseline)
	if err != nil {
		// Baseline integrity is a precondition: abort before any comparison.
		exitWithError("Loading baseline: %v", err)
	}
	tol := baseline.ResolveTolerance(settings.Tolerance, b)

	ui.PrintConfigLine("Baseline", settings.Baseline)
	ui.PrintConfigLine("Results", settings.ResultsRoot)
	ui.PrintConfigLine("Run", settings.RunName)
	ui.PrintConfigLine("Tolerance", fmt.Sprintf("%.3fx", tol))
	ui.PrintConfigLine("Benchmarks", fmt.Sprintf("%d", b.Len()))

	result := gate.Check(gate.Options{
		Baseline:    b,
		ResultsRoot: settings.ResultsRoot,
		RunName:     settings.RunName,
		Tolerance:   tol,
		Progress:    os.Stdout,
	})

	if b.Len() == 0 {
		// A vacuous pass usually means a misconfigured baseline; make it
		// visible instead of silently exiting 0.
		ui.PrintWarning("Baseline contains no benchmarks; nothing was checked")
	}

	if *flags.output != "" {
		writeReport(result, settings, *flags.output)
	}

	if result.Failed() {
		for _, line := range result.Annotations(annotationFormat) {
			fmt.Println(line)
		}
		counts := result.Counts()
		exitWithError("Gate failed: %d regressed, %d invalid, %d missing (of %d)",
			counts[gate.StatusRegression], counts[gate.StatusInvalid], counts[gate.StatusMissing], len(result.Outcomes))
	}

	ui.PrintSuccess(fmt.Sprintf("All %d benchmarks within %.3fx of baseline", len(result.Outcomes), tol))
}

// writeReport renders the run report artifact in the configured format.
func writeReport(result *gate.Report, settings config.Settings, path string) {
	doc := report.New(result, settings.Baseline, settings.ResultsRoot)

	f, err := os.Create(path)
	if err != nil {
		exitWithError("Creating report file: %v", err)
	}
	defer f.Close()

	switch settings.Format {
	case "markdown":
		err = doc.WriteMarkdown(f)
	default:
		err = doc.WriteJSON(f)
	}
	if err != nil {
		exitWithError("Writing report: %v", err)
	}
	ui.PrintInfo(fmt.Sprintf("Report written to %s", path))
}
