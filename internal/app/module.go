package app

import (
	"go.uber.org/fx"

	"lens/internal/app/applier"
	"lens/internal/app/builder"
	"lens/internal/app/bus"
	"lens/internal/app/cache"
	"lens/internal/app/cli"
	"lens/internal/app/daemon"
	"lens/internal/app/generator"
	"lens/internal/app/preflight"
	"lens/internal/app/query"
	"lens/internal/app/server"
	"lens/internal/app/stats"
	"lens/internal/app/watcher"
	"lens/internal/app/worker"
)

// Module wires the full application graph. The logger is provided by
// cmd/main so its output can be muted before a TUI takes the terminal.
var Module = fx.Options(
	applier.Module,
	builder.Module,
	bus.Module,
	cache.Module,
	cli.Module,
	daemon.Module,
	generator.Module,
	preflight.Module,
	query.Module,
	server.Module,
	stats.Module,
	watcher.Module,
	worker.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
