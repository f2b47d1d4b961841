package log

import "sync"

var (
	globalMu sync.RWMutex
	global   *Logger
)

// SetDefaultLogger installs the process-wide logger. The root command calls
// it once config and flags are resolved; tests swap it to capture output.
func SetDefaultLogger(logger *Logger) {
	globalMu.Lock()
	global = logger
	globalMu.Unlock()
}

// DefaultLogger returns the process-wide logger, creating one with the
// standard CLI settings on first use.
func DefaultLogger() *Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	l = Default()
	SetDefaultLogger(l)
	return l
}
