package app

import (
	"context"
	"os"

	"go.uber.org/fx"

	"lens/internal/app/cli"
)

// App drives the command line to completion inside the fx lifecycle: OnStart
// launches Run in a goroutine and OnStop blocks until the active command has
// returned.
type App struct {
	cli  cli.CLI
	done chan struct{}
}

// NewApp creates the application container.
func NewApp(cli cli.CLI) *App {
	return &App{cli: cli, done: make(chan struct{})}
}

// Run executes the CLI and exits the process with its code. The done channel
// closes before the exit so an OnStop racing it does not hang.
func (a *App) Run() {
	code := a.execute()
	close(a.done)

	os.Exit(code)
}

func (a *App) execute() int {
	// The CLI reports its own errors on stderr; only the code matters here.
	code, _ := a.cli.Execute()

	return code
}

// Register wires the application into the fx lifecycle.
func Register(lc fx.Lifecycle, a *App) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go a.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-a.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
