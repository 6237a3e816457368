package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrConfigFileExists    = errors.New("config file already exists")
	ErrFailedToWriteConfig = errors.New("failed to write config file")

	ErrInvalidWatchWindow    = errors.New("watch window must be positive")
	ErrInvalidWatchRetention = errors.New("watch retention must be at least the window")
	ErrInvalidWatchQueue     = errors.New("watch queue size must be positive")
	ErrInvalidApplyAttempts  = errors.New("apply attempts must be positive")
	ErrInvalidApplyBackoff   = errors.New("apply backoff must not be negative")
	ErrInvalidApplyWorkers   = errors.New("apply workers must be positive")
	ErrInvalidAPIBuffer      = errors.New("api buffer size must be positive")
	ErrInvalidExtension      = errors.New("invalid watch extension")

	ErrBuildFailed          = errors.New("workspace build failed")
	ErrRootNotFound         = errors.New("workspace root not found")
	ErrRootNotDirectory     = errors.New("workspace root is not a directory")
	ErrRootNotCached        = errors.New("workspace root is not cached")
	ErrNoManifest           = errors.New("no module manifest under root")
	ErrCacheDisposed        = errors.New("workspace cache is disposed")
	ErrEntryTornDown        = errors.New("cache entry is torn down")
	ErrQueueFull            = errors.New("pending event queue is full")
	ErrNoProjects           = errors.New("representation has no projects")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrTransientRead        = errors.New("transient read failure")
	ErrReadRetriesExhausted = errors.New("read retry attempts exhausted")

	ErrSymbolNotFound        = errors.New("symbol not found")
	ErrUnknownRequest        = errors.New("unknown request type")
	ErrServerNotRunning      = errors.New("server is not running")
	ErrServerShuttingDown    = errors.New("server is shutting down")
	ErrSocketInUse           = errors.New("socket is already in use")
	ErrSocketDirNotWritable  = errors.New("socket directory is not writable")
	ErrDaemonNotReachable    = errors.New("daemon is not reachable")
	ErrFailedToCleanupSocket = errors.New("failed to clean up socket")
	ErrFailedToListenSocket  = errors.New("failed to listen on socket")
	ErrFailedToWriteSocket   = errors.New("failed to write to socket")
	ErrFailedToReadSocket    = errors.New("failed to read from socket")

	ErrFailedToGetWorkingDir = errors.New("failed to get working directory")
	ErrFailedToAcquireWorker = errors.New("failed to acquire worker")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
