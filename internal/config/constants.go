package config

import "time"

// app constants
const (
	AppName        = "lens"
	AppDescription = "local daemon serving live views of Go workspaces"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	Version = "0.4.1"
)

// watch constants
const (
	DebounceWindow = 500 * time.Millisecond
	SweepInterval  = 2 * time.Minute
	SweepRetention = 5 * time.Minute

	QueueSize = 64
)

// apply constants
const (
	ReadAttempts = 3
	ReadBackoff  = 200 * time.Millisecond

	MaxReadWorkers = 4
)

// api constants
const (
	SocketName = "lens.sock"

	EventsBufferSize = 100
	DialTimeout      = 2 * time.Second
)

// lifecycle constants
const (
	ShutdownTimeout = 5 * time.Second
)
