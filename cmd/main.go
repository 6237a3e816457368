package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"lens/internal/app"
	"lens/internal/config"
	"lens/internal/config/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	createApp(cfg, usesTUI(os.Args[1:])).Run()
}

// usesTUI reports whether the invocation takes over the terminal.
// Checked against the raw args because the logger output must be
// chosen before the dependency graph is built.
func usesTUI(args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "help", "--help", "-h":
		return true
	case "events", "ev":
		for _, arg := range args[1:] {
			if arg == "--no-ui" || arg == "--json" {
				return false
			}
		}

		return true
	}

	return false
}

// loadConfig wraps config.Load so tests can call it directly
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// createApp assembles the fx graph. Under a TUI command the logger writes
// to io.Discard so log lines cannot corrupt the alternate screen; nil
// leaves the destination to the configured format.
func createApp(cfg *config.Config, tui bool) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger {
			if tui {
				return logger.NewLoggerWithOutput(cfg, io.Discard)
			}

			return logger.NewLoggerWithOutput(cfg, nil)
		}),
		app.Module,
	)
}

// createFxLogger surfaces fx wiring events on stderr at debug level and
// silences them otherwise
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
