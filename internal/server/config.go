package server

import (
	"time"

	"github.com/credlens/credlens/internal/logging"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the analysis store location. Empty disables persistence;
	// Save requests then fail with 503.
	DBPath string

	// MemoTTL bounds how long memoized results are kept. Memoization is
	// purely an optimization: the engine is idempotent, so a cache hit and a
	// fresh run are indistinguishable.
	MemoTTL time.Duration

	// Logger for request and lifecycle logging. Nil means a stdout logger.
	Logger logging.Logger
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		Addr:    ":8080",
		DBPath:  "credlens.db",
		MemoTTL: 15 * time.Minute,
	}
}
