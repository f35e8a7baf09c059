package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the outcome of completed operations by caller
// supplied key, so a retried request replays the stored summary instead of
// re-running its effects.
type IdempotencyStore interface {
	// Lookup returns the payload stored under key, with ok=false when the
	// key is unknown or expired
	Lookup(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Store saves a payload under key with a TTL
	Store(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for stored results. After this duration,
	// the same key runs the operation again.
	// Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	// Default: true
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
