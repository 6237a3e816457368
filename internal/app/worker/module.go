package worker

import "go.uber.org/fx"

// Module provides the shared pool bounding concurrent document reads
var Module = fx.Options(
	fx.Provide(NewWorkerPool),
)
