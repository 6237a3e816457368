package daemon

import "go.uber.org/fx"

// Module provides the daemon dependencies
var Module = fx.Options(
	fx.Provide(NewDaemon),
)
