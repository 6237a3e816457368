package generator

import "go.uber.org/fx"

// Module provides the lens.yaml generator
var Module = fx.Options(
	fx.Provide(NewGenerator),
)
