package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/benchgate/benchgate/pkg/baseline"
	"github.com/benchgate/benchgate/pkg/config"
	"github.com/benchgate/benchgate/pkg/ui"
)

// runShow pretty-prints a baseline file for humans reviewing what a branch
// commits as the reference timings.
func runShow() {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	baselinePath := fs.String("baseline", config.DefaultBaselinePath, "Baseline JSON file")
	noColor := fs.Bool("no-color", false, "Disable colored output")

	fs.Parse(os.Args[2:])
	ui.SetNoColor(*noColor)

	// Support positional form: benchgate show ci.json
	if args := fs.Args(); len(args) >= 1 {
		*baselinePath = args[0]
	}

	b, err := baseline.Load(*baselinePath)
	if err != nil {
		exitWithError("Loading baseline: %v", err)
	}

	ui.PrintSection("Baseline " + *baselinePath)
	if b.Metadata.Tolerance != nil {
		ui.PrintConfigLine("Tolerance", fmt.Sprintf("%.3fx", *b.Metadata.Tolerance))
	} else {
		ui.PrintConfigLine("Tolerance", fmt.Sprintf("%.3fx (default)", baseline.DefaultTolerance))
	}
	ui.PrintConfigLine("Benchmarks", fmt.Sprintf("%d", b.Len()))
	fmt.Fprintln(os.Stderr)

	for _, group := range b.Groups() {
		fmt.Printf("%s\n", ui.SectionStyle.Render(group))
		for _, bench := range b.BenchmarksIn(group) {
			fmt.Printf("  %-30s %12.3f ns\n", bench, b.Benchmarks[group][bench])
		}
	}
}
