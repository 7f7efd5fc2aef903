// Package logging holds the shared logger for gobucket components. The
// default sink is stderr at error level, so failures such as worker spawn
// errors stay visible without any setup; embedders that want more (or no)
// output swap the base logger or pass per-instance loggers through options.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.ErrorLevel)
)

// SetLogger replaces the base logger. Components capture their logger when
// they start, so call this before starting registries or buckets.
func SetLogger(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = logger
}

// GetLogger returns the base logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", component).Logger()
}
