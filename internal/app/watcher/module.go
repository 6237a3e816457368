package watcher

import "go.uber.org/fx"

// Module provides the watcher factory
var Module = fx.Options(
	fx.Provide(NewFactory),
)
