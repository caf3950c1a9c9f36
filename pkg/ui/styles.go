package ui

import "github.com/charmbracelet/lipgloss"

// Color palette shared across benchgate terminal output
var (
	Primary = lipgloss.Color("#7D56F4")
	Muted   = lipgloss.Color("#6B7280")

	// Outcome colors
	Pass    = lipgloss.Color("#00D26A") // within tolerance
	Fail    = lipgloss.Color("#FF3838") // regression
	Errored = lipgloss.Color("#FFB800") // invalid / missing
)

// Pre-configured styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	ConfigLabelStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Width(15)

	ConfigValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA"))

	DividerStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PassStyle = lipgloss.NewStyle().
			Foreground(Pass).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(Fail).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Errored).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)
)

// StatusStyle returns the style for a gate outcome status string.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch status {
	case "OK":
		return base.Foreground(Pass)
	case "REGRESSION":
		return base.Foreground(Fail)
	case "INVALID", "MISSING":
		return base.Foreground(Errored)
	default:
		return base.Foreground(Muted)
	}
}
