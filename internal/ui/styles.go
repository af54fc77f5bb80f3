package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gatewave/gatecon/internal/version"
)

// Application branding constants
const (
	AppName   = "GATEWAVE CONFIGURATION CONSOLE"
	GitHubURL = "github.com/gatewave/gatecon"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Section tab (inactive)
	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(SubtleColor)

	// Section tab (active)
	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(HighlightColor).
			Bold(true)

	// Field label (unselected row)
	LabelStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Field label (selected row)
	SelectedLabelStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Field label for rows inapplicable in the current mode
	DimmedLabelStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(SubtleColor)

	// Field value while its editor is focused
	FocusedValueStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Read-only panel (daemon state)
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1).
			MarginTop(1)

	// Subtitle / hint text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// Status indicator styles keyed by visible state.
var (
	StatusOnlineStyle  = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	StatusOfflineStyle = lipgloss.NewStyle().Foreground(SubtleColor).Bold(true)
	StatusBusyStyle    = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// RenderConsoleFrame is the wrapper for every console view: a bordered
// full-terminal panel with the application header pinned to the top and the
// context-sensitive help footer pinned to the bottom.
func RenderConsoleFrame(content string, footerText string, terminalWidth int, terminalHeight int) string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(TextColor).Bold(true).Render(AppName+" v"+AppVersion()),
		" ",
		lipgloss.NewStyle().Foreground(SubtleColor).Render(GitHubURL),
	)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}
