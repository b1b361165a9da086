// Package logging provides structured logging using zerolog.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvLogLevel  = "PRISMSLINK_LOG_LEVEL"
	EnvLogPretty = "PRISMSLINK_LOG_PRETTY"
)

// Logger is the process-wide logger. It discards output until Init runs.
var Logger = zerolog.Nop()

// Level represents log levels.
type Level = zerolog.Level

// Log levels exposed for convenience.
const (
	TraceLevel = zerolog.TraceLevel
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	Disabled   = zerolog.Disabled
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Pretty enables human-readable console output.
	Pretty bool
	// TimeFormat specifies the time format. Defaults to RFC3339.
	TimeFormat string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// Init builds the global logger from cfg and returns it.
func Init(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	output := cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: cfg.TimeFormat}
	}
	Logger = zerolog.New(output).Level(cfg.Level).With().Timestamp().Logger()
	return Logger
}

// ApplyEnv overrides cfg from PRISMSLINK_LOG_LEVEL and PRISMSLINK_LOG_PRETTY.
func ApplyEnv(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogPretty))); err == nil {
		cfg.Pretty = v
	}
}

// ParseLevel parses a log level name (case-insensitive). The second result
// is false for empty or unknown names.
func ParseLevel(raw string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "disabled", "off", "none":
		return Disabled, true
	default:
		return InfoLevel, false
	}
}

// Component returns a child of the global logger tagged with component.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
