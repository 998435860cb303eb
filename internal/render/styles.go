// Package render turns the derived timeline model into its output forms:
// machine-readable JSON/YAML and the narrative terminal report.
package render

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	readyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	notReadyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	absentStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	presentMark = "[OK]"
	absentMark  = "[--]"
)
