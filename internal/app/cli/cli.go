//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/charmbracelet/x/term"

	"lens/internal/app/daemon"
	"lens/internal/app/generator"
	"lens/internal/app/paths"
	"lens/internal/app/query"
	"lens/internal/app/server"
	"lens/internal/app/stats"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// CLI defines the interface for command-line execution
type CLI interface {
	Execute() (int, error)
}

// cli represents the command-line interface for the application
type cli struct {
	cfg    *config.Config
	daemon daemon.Daemon
	client server.Client
	gen    generator.Generator
	tui    TUI
	log    logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(
	cfg *config.Config,
	d daemon.Daemon,
	client server.Client,
	gen generator.Generator,
	tui TUI,
	log logger.Logger,
) CLI {
	return &cli{
		cfg:    cfg,
		daemon: d,
		client: client,
		gen:    gen,
		tui:    tui,
		log:    log.WithComponent("CLI"),
	}
}

// Execute parses os.Args and runs the selected command
func (c *cli) Execute() (int, error) {
	opts, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel.Render("Error:"), err)
		return 1, err
	}

	if err := c.run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel.Render("Error:"), err)
		return 1, err
	}

	return 0, nil
}

// run dispatches a parsed command
func (c *cli) run(opts *Options) error {
	switch opts.Type {
	case CommandServe:
		return c.handleServe()
	case CommandStatus:
		return c.handleStatus(opts)
	case CommandSymbol:
		return c.handleSymbol(opts)
	case CommandDoc:
		return c.handleDoc(opts)
	case CommandRefs:
		return c.handleRefs(opts)
	case CommandEvents:
		return c.handleEvents(opts)
	case CommandInit:
		return c.handleInit(opts)
	case CommandVersion:
		return c.handleVersion()
	case CommandHelp:
		return c.tui.Help()
	}

	return nil
}

// handleServe runs the daemon until a signal arrives
func (c *cli) handleServe() error {
	c.log.Debug().Msg("Starting daemon")

	return c.daemon.Run(context.Background())
}

// handleStatus prints daemon process and cache status
func (c *cli) handleStatus(opts *Options) error {
	reply, err := c.client.Status()
	if err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(reply)
	}

	printStatus(reply)

	return nil
}

// handleSymbol prints declarations of a symbol
func (c *cli) handleSymbol(opts *Options) error {
	decls, err := c.client.Symbol(paths.Normalize(opts.Root), opts.Name)
	if err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(decls)
	}

	printDeclarations(decls, false)

	return nil
}

// handleDoc prints declarations with their doc comments
func (c *cli) handleDoc(opts *Options) error {
	decls, err := c.client.Doc(paths.Normalize(opts.Root), opts.Name)
	if err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(decls)
	}

	printDeclarations(decls, true)

	return nil
}

// handleRefs prints use sites of an identifier
func (c *cli) handleRefs(opts *Options) error {
	refs, err := c.client.References(paths.Normalize(opts.Root), opts.Name)
	if err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(refs)
	}

	printReferences(refs)

	return nil
}

// handleEvents streams change events, through the TUI by default
func (c *cli) handleEvents(opts *Options) error {
	roots := normalizeRoots(opts.Roots)

	if opts.NoUI || opts.JSON {
		return c.streamEvents(roots, opts.JSON)
	}

	return c.tui.Events(context.Background(), roots)
}

// streamEvents prints frames as lines until interrupted
func (c *cli) streamEvents(roots []string, asJSON bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := c.client.Events(ctx, roots, func(frame server.EventFrame) {
		if asJSON {
			data, err := json.Marshal(frame)
			if err != nil {
				return
			}

			fmt.Println(string(data))

			return
		}

		fmt.Println(formatFrame(frame))
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

// handleInit writes a starter lens.yaml seeded with the chosen root
func (c *cli) handleInit(opts *Options) error {
	genOpts := generator.DefaultOptions()
	genOpts.Root = paths.Normalize(opts.Root)

	if err := c.gen.Generate(genOpts, opts.Force, opts.DryRun); err != nil {
		return err
	}

	if !opts.DryRun {
		fmt.Printf("Wrote lens.yaml, start the daemon with %s\n", commandName.Render("lens serve"))
	}

	return nil
}

// handleVersion displays version information
func (c *cli) handleVersion() error {
	fmt.Println(RenderTitle())
	fmt.Printf("%s\n\n", mutedText.Render(runtime.Version()))

	return nil
}

// printJSON writes any reply as indented JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))

	return nil
}

// printStatus renders the status reply as aligned columns
func printStatus(reply *server.StatusReply) {
	fmt.Println(RenderTitle())

	fmt.Printf("  %-12s %s\n", "socket", reply.Socket)
	fmt.Printf("  %-12s %d\n", "pid", reply.Process.PID)
	fmt.Printf("  %-12s %s\n", "uptime", stats.FormatUptime(reply.Process.Uptime))
	fmt.Printf("  %-12s %.1f%%\n", "cpu", reply.Process.CPUPercent)
	fmt.Printf("  %-12s %s\n", "memory", strings.TrimSpace(stats.FormatMemory(reply.Process.MemoryRSS)))
	fmt.Printf("  %-12s %d\n", "goroutines", reply.Process.Goroutines)

	fmt.Printf("\n%s\n", sectionHeader.Render("Cached roots"))

	if len(reply.Roots) == 0 {
		fmt.Println(mutedText.Render("  (none)"))
		return
	}

	rootWidth := rootColumnWidth()

	fmt.Println(mutedText.Render(fmt.Sprintf("  %-*s %-10s %9s %10s", rootWidth, "ROOT", "STATE", "PROJECTS", "DOCUMENTS")))

	for _, entry := range reply.Roots {
		fmt.Printf("  %-*s %-10s %9d %10d\n", rootWidth, entry.Root, entry.State, entry.Projects, entry.Documents)
	}
}

// rootColumnWidth sizes the root column to the terminal, leaving room for
// the state and count columns
func rootColumnWidth() int {
	termWidth, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || termWidth < 40 {
		termWidth = 80
	}

	width := termWidth - 35
	if width < 30 {
		width = 30
	}

	return width
}

// printDeclarations renders declarations, optionally with docs
func printDeclarations(decls []query.Declaration, withDocs bool) {
	for _, d := range decls {
		location := fmt.Sprintf("%s:%d", d.File, d.Line)
		fmt.Printf("%-8s %s  %s\n", d.Kind, commandName.Render(d.Name), mutedText.Render(location))
		fmt.Printf("         %s\n", d.Signature)

		if withDocs && d.Doc != "" {
			for _, line := range strings.Split(strings.TrimRight(d.Doc, "\n"), "\n") {
				fmt.Printf("         %s\n", bodyText.Render(line))
			}
		}
	}

	fmt.Println(mutedText.Render(fmt.Sprintf("%d declarations", len(decls))))
}

// printReferences renders use sites with their line excerpts
func printReferences(refs []query.Reference) {
	for _, r := range refs {
		location := fmt.Sprintf("%s:%d:%d", r.File, r.Line, r.Column)
		fmt.Printf("%s  %s\n", mutedText.Render(location), strings.TrimSpace(r.Excerpt))
	}

	fmt.Println(mutedText.Render(fmt.Sprintf("%d references", len(refs))))
}

// normalizeRoots resolves each root the way the daemon keys them
func normalizeRoots(roots []string) []string {
	out := make([]string, 0, len(roots))

	for _, root := range roots {
		out = append(out, paths.Normalize(root))
	}

	return out
}
