package query

import "go.uber.org/fx"

// Module provides the query engine
var Module = fx.Options(
	fx.Provide(NewEngine),
)
