// Package debug provides the engine's structured debug logging, enabled
// with --debug and silent otherwise.
package debug

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	enabled   bool
	enabledMu sync.RWMutex

	logger   zerolog.Logger
	loggerMu sync.RWMutex
)

// stderrWriter forwards to the current value of os.Stderr at write time,
// so tests that temporarily redirect os.Stderr observe this package's output.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

func init() {
	loggerMu.Lock()
	logger = zerolog.New(zerolog.ConsoleWriter{Out: stderrWriter{}, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger().Level(zerolog.Disabled)
	loggerMu.Unlock()
}

// SetDebug enables or disables debug mode.
func SetDebug(enable bool) {
	enabledMu.Lock()
	enabled = enable
	enabledMu.Unlock()

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if enable {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.Disabled)
	}
}

// IsEnabled returns whether debug mode is enabled.
func IsEnabled() bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

// SetNoColor disables ANSI coloring of debug output.
func SetNoColor(disable bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	w := zerolog.ConsoleWriter{Out: stderrWriter{}, TimeFormat: "15:04:05.000", NoColor: disable}
	lvl := logger.GetLevel()
	logger = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

func current() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}

// Debug logs a formatted debug message.
func Debug(format string, args ...interface{}) {
	current().Debug().Msgf(format, args...)
}

// Debugf is an alias for Debug.
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection marks the start of a logical phase in debug output.
func DebugSection(section string) {
	current().Debug().Msg("=== " + section + " ===")
}

// DebugValue logs a single key/value pair.
func DebugValue(key string, value interface{}) {
	current().Debug().Msgf("%s = %v", key, value)
}

// DebugJSON logs a structured value as JSON under key.
func DebugJSON(key string, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("failed to marshal %s to JSON: %v", key, err)
		return
	}
	current().Debug().Msgf("%s:\n%s", key, string(b))
}
