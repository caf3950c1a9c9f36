// Package ui renders benchgate's terminal chrome. Human-facing output
// (banner, config lines, status messages) goes to stderr so that stdout
// stays reserved for gate result lines and CI annotations.
package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/benchgate/benchgate/pkg/ui.Version=1.0.0"
var Version = "0.3.0"

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent suppresses all non-essential stderr output.
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled.
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output.
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled.
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

const miniBanner = `
________________________________________________

 benchgate v%s
________________________________________________`

const bannerSeparator = "________________________________________________"

// PrintBanner prints the minimal banner with version info.
func PrintBanner() {
	if IsSilent() {
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", BannerStyle.Render(fmt.Sprintf(miniBanner, Version)))
	fmt.Fprintln(os.Stderr)
}

// PrintSection prints a section header.
func PrintSection(title string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, SectionStyle.Render("> "+title))
	fmt.Fprintln(os.Stderr, DividerStyle.Render(bannerSeparator))
}

// PrintConfigLine prints a single key/value config line.
func PrintConfigLine(key, value string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s\n",
		ConfigLabelStyle.Render(key+":"),
		ConfigValueStyle.Render(value),
	)
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, PassStyle.Render("  "+Icon("✓", "[+]")+" "+message))
}

// PrintError prints an error message. Errors print even in silent mode.
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, FailStyle.Render("  "+Icon("✗", "[X]")+" "+message))
}

// PrintWarning prints a warning message.
func PrintWarning(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, WarnStyle.Render("  "+Icon("⚠", "[!]")+" "+message))
}

// PrintInfo prints an informational message.
func PrintInfo(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, HelpStyle.Render("  "+Icon("•", "[i]")+" "+message))
}
