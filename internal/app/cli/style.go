package cli

import (
	"github.com/charmbracelet/lipgloss"

	"lens/internal/config"
)

// Terminal palette. Lipgloss degrades these to the nearest ANSI color on
// limited terminals and drops them entirely when stdout is not a TTY.
const (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorCommand = lipgloss.Color("#04B575")
	colorExample = lipgloss.Color("#FFA726")
	colorError   = lipgloss.Color("#FF5F87")
	colorBody    = lipgloss.Color("#E0E0E0")
	colorHint    = lipgloss.Color("#9E9E9E")
	colorMuted   = lipgloss.Color("#757575")
	colorVersion = lipgloss.Color("#BDBDBD")
	colorStamp   = lipgloss.Color("#666666")
)

// Semantic styles used by the printers and TUI views.
var (
	sectionHeader = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginTop(1).MarginBottom(1)
	streamHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginTop(1)
	commandName   = lipgloss.NewStyle().Bold(true).Foreground(colorCommand)
	exampleCode   = lipgloss.NewStyle().Bold(true).Foreground(colorExample)
	errorLabel    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	bodyText      = lipgloss.NewStyle().Foreground(colorBody)
	hintText      = lipgloss.NewStyle().Foreground(colorHint).Italic(true).MarginTop(2)
	mutedText     = lipgloss.NewStyle().Foreground(colorMuted)

	// Title block components, inline styles without margins
	appName    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	appVersion = lipgloss.NewStyle().Foreground(colorVersion)
	titleBlock = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)

	// Event stream frames
	eventStamp = lipgloss.NewStyle().Foreground(colorStamp)
)

// RenderTitle renders the program name, version, and one-line description.
func RenderTitle() string {
	title := titleBlock.Render(appName.Render(config.AppName) + appVersion.Render(" v"+config.Version))

	return lipgloss.JoinVertical(lipgloss.Left, title, bodyText.Render(config.AppDescription))
}

// RenderHelp renders the exit hint shown under TUI views.
func RenderHelp() string {
	return hintText.Render("Press q or esc to exit")
}
