// internal/app/system/timeouts/timeouts.go

// Package timeouts centralizes the context deadlines handlers attach to
// store calls. Every operation in the core must complete or fail within a
// bounded request/response cycle; these values are the bound.
//
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries and simple writes
//   - Long: multi-collection writes (cascade deletes, decision + notify)
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Configure overrides the defaults. Zero values leave a setting unchanged.
func Configure(p, s, m, l time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if p > 0 {
		ping = p
	}
	if s > 0 {
		short = s
	}
	if m > 0 {
		medium = m
	}
	if l > 0 {
		long = l
	}
}

// Ping returns the health-check timeout.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for writes touching multiple collections.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// WithTimeout wraps ctx with a deadline and logs the operation label at
// debug level, so slow operations can be traced back to their call site.
func WithTimeout(ctx context.Context, d time.Duration, log *zap.Logger, op string) (context.Context, context.CancelFunc) {
	if log != nil {
		log.Debug("operation timeout set", zap.String("op", op), zap.Duration("timeout", d))
	}
	return context.WithTimeout(ctx, d)
}
