package server

import (
	"go.uber.org/fx"

	"lens/internal/config"
)

// Module provides the daemon API server and the socket client
var Module = fx.Options(
	fx.Provide(NewServer),
	fx.Provide(func(cfg *config.Config) Client {
		return NewClient(SocketPath(cfg))
	}),
)
