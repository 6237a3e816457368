package cli

import "go.uber.org/fx"

// Module provides the command line and its TUI views
var Module = fx.Options(
	fx.Provide(NewCLI),
	fx.Provide(NewTUI),
)
