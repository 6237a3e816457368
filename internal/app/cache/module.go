package cache

import "go.uber.org/fx"

// Module provides the workspace cache
var Module = fx.Options(
	fx.Provide(NewCache),
)
