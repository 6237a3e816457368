package logger

//go:generate mockgen -source=logger.go -destination=logger_mock.go -package=logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"lens/internal/config"
)

// Level and format names accepted in lens.yaml.
const (
	TraceLevel = "trace"
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
	FatalLevel = "fatal"
	PanicLevel = "panic"

	ConsoleFormat = "console"
	JSONFormat    = "json"

	// Millisecond precision: watch pipeline events land within the same second
	TimeFormat = "15:04:05.000"
)

// componentField tags every line with the daemon component that wrote it.
const componentField = "component"

// Logger is the logging surface handed to daemon components.
type Logger interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	WithComponent(name string) Logger
}

// zlogger adapts zerolog to the Logger interface.
type zlogger struct {
	z zerolog.Logger
}

// NewLogger builds a logger from the loaded configuration.
func NewLogger(cfg *config.Config) Logger {
	return NewLoggerWithOutput(cfg, nil)
}

// NewLoggerWithOutput builds a logger writing to out. A nil out selects the
// destination from the configured format: human-readable console lines or
// raw JSON, both on stderr.
func NewLoggerWithOutput(cfg *config.Config, out io.Writer) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339

	if out == nil {
		out = formatWriter(cfg.Logging.Format)
	}

	z := zerolog.New(out).
		Level(parseLevel(cfg.Logging.Level)).
		With().
		Timestamp().
		Str("version", config.Version).
		Logger()

	return &zlogger{z: z}
}

func (l *zlogger) Debug() *zerolog.Event { return l.z.Debug() }
func (l *zlogger) Info() *zerolog.Event  { return l.z.Info() }
func (l *zlogger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l *zlogger) Error() *zerolog.Event { return l.z.Error() }

// WithComponent returns a child logger whose lines carry the component name,
// rendered as a bracketed prefix in console format.
func (l *zlogger) WithComponent(name string) Logger {
	return &zlogger{z: l.z.With().Str(componentField, name).Logger()}
}

// formatWriter picks the writer for a format name, falling back to console
// for anything unrecognized. Logs go to stderr so query output on stdout
// stays machine-parseable.
func formatWriter(format string) io.Writer {
	if format == JSONFormat {
		return os.Stderr
	}

	return consoleWriter()
}

func consoleWriter() zerolog.ConsoleWriter {
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: TimeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			componentField,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}

	// The component renders as a [name] prefix instead of a key=value pair.
	w.FormatPrepare = func(parts map[string]interface{}) error {
		if name, ok := parts[componentField].(string); ok {
			parts[componentField] = "[" + name + "]"
		}

		return nil
	}
	w.FormatFieldName = func(name interface{}) string {
		if name == componentField {
			return ""
		}

		return fmt.Sprintf("%s=", name)
	}

	return w
}

// levels maps lens.yaml level names to zerolog levels.
var levels = map[string]zerolog.Level{
	TraceLevel: zerolog.TraceLevel,
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
	PanicLevel: zerolog.PanicLevel,
}

// parseLevel resolves a level name, treating the empty string and unknown
// names as info.
func parseLevel(name string) zerolog.Level {
	if lvl, ok := levels[name]; ok {
		return lvl
	}

	return zerolog.InfoLevel
}
