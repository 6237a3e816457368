//go:generate mockgen -source=tui.go -destination=tui_mock.go -package=cli
package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lens/internal/app/server"
)

// TUI renders the full-screen views
type TUI interface {
	Help() error
	Events(ctx context.Context, roots []string) error
}

type tui struct {
	client server.Client
}

// NewTUI creates the terminal UI runner
func NewTUI(client server.Client) TUI {
	return &tui{client: client}
}

// Help shows the command overview until the user dismisses it.
func (t *tui) Help() error {
	p := tea.NewProgram(newHelpModel(), tea.WithAltScreen())

	_, err := p.Run()

	return err
}

// Events streams change frames into a scrollable viewport. A model error
// surfaces only when the stream died on its own, not on user exit.
func (t *tui) Events(ctx context.Context, roots []string) error {
	p := tea.NewProgram(
		newEventsModel(ctx, t.client, roots),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(eventsModel); ok && m.err != nil && !m.isShuttingDown {
		return m.err
	}

	return nil
}
