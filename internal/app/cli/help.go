package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpEntry is one row of the command overview.
type helpEntry struct {
	invocation string
	about      string
}

var helpUsage = []helpEntry{
	{"lens serve", "Run the workspace daemon"},
	{"lens status", "Show daemon and cache status"},
	{"lens symbol <name>", "Find declarations of a symbol"},
	{"lens doc <name>", "Show docs for a symbol"},
	{"lens refs <name>", "List use sites of an identifier"},
	{"lens events", "Watch live change events"},
	{"lens init", "Write a starter lens.yaml"},
	{"lens version", "Show version"},
}

var helpExamples = []helpEntry{
	{"lens symbol Parse --root .", "Declarations in the current workspace"},
	{"lens refs Config --json", "Machine-readable reference list"},
	{"lens events --root /work/app", "Events for one root only"},
}

type helpModel struct{}

func newHelpModel() helpModel {
	return helpModel{}
}

func (m helpModel) Init() tea.Cmd {
	return nil
}

func (m helpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m helpModel) View() string {
	lines := []string{RenderTitle(), sectionHeader.Render("Usage:")}

	for _, e := range helpUsage {
		lines = append(lines, helpLine(commandName, e))
	}

	lines = append(lines, sectionHeader.Render("Examples:"))

	for _, e := range helpExamples {
		lines = append(lines, helpLine(exampleCode, e))
	}

	lines = append(lines, RenderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// helpLine pads the invocation to a fixed column so the descriptions align.
func helpLine(style lipgloss.Style, e helpEntry) string {
	return bodyText.Render("  " + style.Render(fmt.Sprintf("%-30s", e.invocation)) + "  " + e.about)
}
