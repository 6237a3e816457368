package builder

import "go.uber.org/fx"

// Module provides the representation builder
var Module = fx.Options(
	fx.Provide(NewBuilder),
)
