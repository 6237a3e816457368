package stats

import "go.uber.org/fx"

// Module provides the process stats collector
var Module = fx.Options(
	fx.Provide(NewCollector),
)
