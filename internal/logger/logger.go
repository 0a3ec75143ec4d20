package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the component-scoped logging contract used across the application.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel maps LOG_LEVEL style names onto zerolog levels.
// Unknown or empty names fall back to info, or debug when debug is set.
func ParseLevel(name string, debug bool) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		if debug {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
}
