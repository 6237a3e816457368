package preflight

import "go.uber.org/fx"

// Module provides the pre-start environment checks
var Module = fx.Options(
	fx.Provide(NewPreflight),
)
