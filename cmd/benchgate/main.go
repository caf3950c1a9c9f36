package main

import (
	"fmt"
	"os"

	"github.com/benchgate/benchgate/pkg/ui"
)

func printUsage() {
	ui.PrintBanner()

	fmt.Fprintln(os.Stderr, ui.SectionStyle.Render("COMMANDS"))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  %s  %s\n", ui.ConfigValueStyle.Render("check  "), "Gate a benchmark run against the committed baseline")
	fmt.Fprintf(os.Stderr, "  %s  %s\n", ui.ConfigValueStyle.Render("show   "), "Pretty-print a baseline file")
	fmt.Fprintf(os.Stderr, "  %s  %s\n", ui.ConfigValueStyle.Render("cicd   "), "Emit a CI pipeline template that runs the gate")
	fmt.Fprintf(os.Stderr, "  %s  %s\n", ui.ConfigValueStyle.Render("version"), "Print version information")
	fmt.Fprintln(os.Stderr)

	fmt.Fprintln(os.Stderr, ui.SectionStyle.Render("QUICK START"))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  cargo bench --workspace")
	fmt.Fprintln(os.Stderr, "  benchgate check -baseline benches/baselines/ci.json -results-root target/criterion")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, ui.HelpStyle.Render("  Exit code 0 means every benchmark stayed within tolerance; 1 means"))
	fmt.Fprintln(os.Stderr, ui.HelpStyle.Render("  at least one regression, invalid ratio, or missing results file."))
	fmt.Fprintln(os.Stderr)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check", "gate":
		runCheck()
	case "show":
		runShow()
	case "cicd":
		runCICD()
	case "version", "-version", "--version":
		fmt.Println(ui.VersionStyle.Render(fmt.Sprintf("benchgate v%s", ui.Version)))
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		exitWithError("Unknown command %q", os.Args[1])
	}
}
