package applier

import "go.uber.org/fx"

// Module provides the mutation applier
var Module = fx.Options(
	fx.Provide(NewApplier),
)
