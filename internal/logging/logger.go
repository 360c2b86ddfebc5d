// Package logging configures the zerolog logger used across yamcl and carries
// it through contexts.
//
//	log := logging.FromContext(ctx)
//	log.Debug().Str("session", id).Int("expected", n).Msg("completion mismatch")
package logging

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu            sync.RWMutex
	defaultLogger = zerolog.Nop()
)

// Default returns the process logger. It discards output until SetDefault is called.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	logger := defaultLogger
	return &logger
}

func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()

	defaultLogger = logger
}

// Configure builds a logger from cfg and installs it as the default.
func Configure(cfg *Config) zerolog.Logger {
	logger := NewLoggerFromConfig(cfg)
	SetDefault(logger)
	return logger
}
