package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lens/internal/app/applier"
	"lens/internal/app/bus"
	"lens/internal/app/server"
	"lens/internal/app/ui/components"
	"lens/internal/config"
)

const (
	eventsHeaderHeight    = 2
	eventsHelpHeight      = 3
	viewportBorderPadding = 4
	eventsBufferLines     = 500
	frameChanSize         = 64
)

var (
	viewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			PaddingRight(1)

	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA726"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	blinkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// eventCounts tallies the stream for the header line
type eventCounts struct {
	total   int
	applied int
	skipped int
	failed  int
}

// eventsUIState manages the stream viewport
type eventsUIState struct {
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	follow   bool
}

// eventsModel is the main TUI model for the events command
type eventsModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	client server.Client
	roots  []string

	ui     *eventsUIState
	blink  *components.Blink
	frames chan server.EventFrame
	lines  []string
	counts *eventCounts

	isShuttingDown bool
	streamClosed   bool
	err            error
}

func newEventsModel(ctx context.Context, client server.Client, roots []string) eventsModel {
	ctx, cancel := context.WithCancel(ctx)

	vp := viewport.New(80, 20)
	vp.Style = viewportStyle

	return eventsModel{
		ctx:    ctx,
		cancel: cancel,
		client: client,
		roots:  roots,
		ui:     &eventsUIState{viewport: vp, follow: true},
		blink:  components.NewBlink(),
		frames: make(chan server.EventFrame, frameChanSize),
		counts: &eventCounts{},
	}
}

type frameMsg server.EventFrame

type streamClosedMsg struct {
	err error
}

type uiTickMsg time.Time

func (m eventsModel) Init() tea.Cmd {
	return tea.Batch(
		m.startStream(),
		m.waitForFrame(),
		tea.WindowSize(),
		m.tick(),
	)
}

// startStream subscribes to the daemon and feeds frames into the channel
func (m eventsModel) startStream() tea.Cmd {
	return func() tea.Msg {
		err := m.client.Events(m.ctx, m.roots, func(frame server.EventFrame) {
			select {
			case m.frames <- frame:
			case <-m.ctx.Done():
			}
		})

		return streamClosedMsg{err: err}
	}
}

// waitForFrame hands the next buffered frame to the update loop
func (m eventsModel) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case frame := <-m.frames:
			return frameMsg(frame)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m eventsModel) tick() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

func (m eventsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case frameMsg:
		m.appendFrame(server.EventFrame(msg))
		return m, m.waitForFrame()
	case uiTickMsg:
		m.blink.Update()
		return m, m.tick()
	case streamClosedMsg:
		if m.isShuttingDown || m.ctx.Err() != nil {
			return m, tea.Quit
		}

		m.err = msg.err
		m.streamClosed = true

		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.ui.viewport, cmd = m.ui.viewport.Update(msg)

	return m, cmd
}

func (m eventsModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.streamClosed {
			return m, tea.Quit
		}

		if !m.isShuttingDown {
			m.isShuttingDown = true
			m.cancel()
		}

		return m, nil
	case "f":
		m.ui.follow = !m.ui.follow
		if m.ui.follow {
			m.ui.viewport.GotoBottom()
		}
	case "up", "k":
		m.ui.follow = false
		m.ui.viewport.ScrollUp(1)
	case "down", "j":
		m.ui.viewport.ScrollDown(1)
	case "pgup":
		m.ui.follow = false
		m.ui.viewport.PageUp()
	case "pgdown":
		m.ui.viewport.PageDown()
	case "home":
		m.ui.follow = false
		m.ui.viewport.GotoTop()
	case "end":
		m.ui.follow = true
		m.ui.viewport.GotoBottom()
	}

	return m, nil
}

func (m eventsModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.ui.width = msg.Width
	m.ui.height = msg.Height

	availableHeight := msg.Height - eventsHeaderHeight - eventsHelpHeight - 2

	if !m.ui.ready {
		m.ui.viewport = viewport.New(msg.Width-viewportBorderPadding, availableHeight)
		m.ui.viewport.Style = viewportStyle
		m.ui.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.ui.ready = true
	} else {
		m.ui.viewport.Width = msg.Width - viewportBorderPadding
		m.ui.viewport.Height = availableHeight
	}

	if m.ui.follow {
		m.ui.viewport.GotoBottom()
	}

	return m, nil
}

// appendFrame tallies a frame and adds its rendered line to the viewport
func (m *eventsModel) appendFrame(frame server.EventFrame) {
	m.tally(frame)
	m.blink.Pulse()

	m.lines = append(m.lines, formatFrame(frame))
	if len(m.lines) > eventsBufferLines {
		m.lines = m.lines[len(m.lines)-eventsBufferLines:]
	}

	m.ui.viewport.SetContent(strings.Join(m.lines, "\n"))

	if m.ui.follow {
		m.ui.viewport.GotoBottom()
	}
}

func (m *eventsModel) tally(frame server.EventFrame) {
	m.counts.total++

	switch frame.Type {
	case string(bus.EventChangeApplied):
		switch frame.Status {
		case applier.StatusApplied.String():
			m.counts.applied++
		case applier.StatusSkipped.String():
			m.counts.skipped++
		case applier.StatusFailed.String():
			m.counts.failed++
		}
	case string(bus.EventBuildFailed):
		m.counts.failed++
	}
}

func (m eventsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteString("\n\n")
	b.WriteString(m.ui.viewport.View())
	b.WriteString("\n\n")

	follow := "on"
	if !m.ui.follow {
		follow = "off"
	}

	help := hintText.Render(fmt.Sprintf("f: follow (%s) • ↑/↓: scroll • pgup/pgdn: page • q: quit", follow))
	b.WriteString(help)

	return b.String()
}

func (m eventsModel) headerLine() string {
	filter := "all roots"
	if len(m.roots) > 0 {
		filter = strings.Join(m.roots, ", ")
	}

	state := "streaming"

	switch {
	case m.isShuttingDown:
		state = "closing"
	case m.streamClosed:
		state = "disconnected"
	}

	var counters strings.Builder

	fmt.Fprintf(&counters, "%d events", m.counts.total)

	if m.counts.applied > 0 {
		fmt.Fprintf(&counters, ", %d applied", m.counts.applied)
	}

	if m.counts.skipped > 0 {
		fmt.Fprintf(&counters, ", %d skipped", m.counts.skipped)
	}

	if m.counts.failed > 0 {
		fmt.Fprintf(&counters, ", %d failed", m.counts.failed)
	}

	header := streamHeader.Render(fmt.Sprintf("%s events | %s | %s | %s",
		config.AppName, state, filter, counters.String()))

	return header + " " + m.blink.Render(blinkStyle)
}

// formatFrame renders one event frame as a single line
func formatFrame(frame server.EventFrame) string {
	timestamp := eventStamp.Render(frame.Timestamp.Format("15:04:05"))
	label := styleForFrame(frame).Render(fmt.Sprintf("%-14s", frame.Type))

	return fmt.Sprintf("%s %s %s", timestamp, label, frameDetail(frame))
}

// frameDetail renders the per-type payload fields. Root and path
// segments carry the root's accent color so interleaved streams from
// several workspaces stay readable.
func frameDetail(frame server.EventFrame) string {
	root := components.RootStyle(frame.Root).Render(frame.Root)

	switch frame.Type {
	case string(bus.EventBuildStarted):
		return fmt.Sprintf("%s building", root)
	case string(bus.EventBuildComplete):
		return fmt.Sprintf("%s ready (%d projects, %d documents in %s)",
			root, frame.Projects, frame.Documents, frame.Duration)
	case string(bus.EventBuildFailed):
		return fmt.Sprintf("%s failed: %s", root, frame.Error)
	case string(bus.EventChangeApplied):
		path := components.RootStyle(frame.Root).Render(frame.Path)

		if frame.Reason != "" {
			return fmt.Sprintf("%s %s %s: %s", path, frame.Op, frame.Status, frame.Reason)
		}

		return fmt.Sprintf("%s %s %s (%d docs)", path, frame.Op, frame.Status, frame.Docs)
	case string(bus.EventWatchStarted):
		return fmt.Sprintf("%s watching", root)
	case string(bus.EventWatchStopped):
		return fmt.Sprintf("%s watch stopped", root)
	case string(bus.EventRootDisposed):
		return fmt.Sprintf("%s disposed", root)
	case string(bus.EventCacheCleared):
		return "cache cleared"
	case string(bus.EventSignal):
		return fmt.Sprintf("daemon received %s", frame.Signal)
	default:
		return root
	}
}

// styleForFrame picks the accent color for a frame's type label
func styleForFrame(frame server.EventFrame) lipgloss.Style {
	switch frame.Type {
	case string(bus.EventBuildFailed):
		return failedStyle
	case string(bus.EventChangeApplied):
		switch frame.Status {
		case applier.StatusFailed.String():
			return failedStyle
		case applier.StatusSkipped.String():
			return skippedStyle
		default:
			return appliedStyle
		}
	case string(bus.EventBuildComplete):
		return appliedStyle
	default:
		return noticeStyle
	}
}
