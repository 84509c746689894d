package logger

import (
	"strings"
	"sync"
)

// Log levels accepted in config (log.level).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process logger. Only the first call's level is honoured.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(strings.ToLower(strings.TrimSpace(level)))
	})
	return globalLogger
}
