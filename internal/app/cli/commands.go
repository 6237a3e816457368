package cli

import (
	"github.com/spf13/cobra"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandHelp CommandType = iota
	CommandServe
	CommandStatus
	CommandSymbol
	CommandDoc
	CommandRefs
	CommandEvents
	CommandInit
	CommandVersion
)

// Options contains the parsed command-line arguments
type Options struct {
	Type   CommandType
	Root   string
	Name   string
	Roots  []string
	JSON   bool
	NoUI   bool
	Force  bool
	DryRun bool
}

// Parse maps command-line args onto an Options value. Subcommands only
// record what was asked for; cli.run dispatches afterwards.
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandHelp,
		Root: ".",
	}

	var showVersion bool

	root := rootCommand(result, &showVersion)
	root.AddCommand(
		typedCommand(result, CommandServe, "serve", "Run the workspace daemon"),
		typedCommand(result, CommandStatus, "status", "Show daemon process and cache status", "st"),
		queryCommand(result, CommandSymbol, "symbol", "sym", "Find declarations of a symbol in a workspace"),
		queryCommand(result, CommandDoc, "doc", "d", "Show declarations with their doc comments"),
		queryCommand(result, CommandRefs, "refs", "r", "List use sites of an identifier"),
		eventsCommand(result),
		initCommand(result),
		typedCommand(result, CommandVersion, "version", "Show version information"),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if showVersion {
		result.Type = CommandVersion
	}

	return result, nil
}

// rootCommand creates the bare `lens` command. Both running it and asking
// for help land on the help view.
func rootCommand(result *Options, showVersion *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lens",
		Short: "A local daemon serving live views of Go workspaces",
		Long: `Lens keeps parsed in-memory representations of Go workspaces, follows
filesystem changes, and answers symbol, doc, and reference queries
over a Unix socket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandHelp
		},
	}

	cmd.PersistentFlags().BoolVar(&result.JSON, "json", false, "Print machine-readable JSON")
	cmd.Flags().BoolVarP(showVersion, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// typedCommand creates a flagless subcommand that just selects kind
func typedCommand(result *Options, kind CommandType, use, short string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = kind
		},
	}
}

// queryCommand creates one of the symbol/doc/refs subcommands, which differ
// only in name and selected kind
func queryCommand(result *Options, kind CommandType, use, alias, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use + " <name>",
		Aliases: []string{alias},
		Short:   short,
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = kind
			result.Name = args[0]
		},
	}

	cmd.Flags().StringVar(&result.Root, "root", ".", "Workspace root to query")

	return cmd
}

// eventsCommand creates the events subcommand
func eventsCommand(result *Options) *cobra.Command {
	cmd := typedCommand(result, CommandEvents, "events", "Watch change events streaming from the daemon", "ev")

	cmd.Flags().StringSliceVar(&result.Roots, "root", nil, "Only show events for these roots (repeatable)")
	cmd.Flags().BoolVar(&result.NoUI, "no-ui", false, "Print events as plain lines instead of the TUI")

	return cmd
}

// initCommand creates the init subcommand
func initCommand(result *Options) *cobra.Command {
	cmd := typedCommand(result, CommandInit, "init", "Write a starter lens.yaml", "i")

	cmd.Flags().StringVar(&result.Root, "root", ".", "Workspace root to seed the config with")
	cmd.Flags().BoolVar(&result.Force, "force", false, "Overwrite an existing lens.yaml")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print the config instead of writing it")

	return cmd
}
