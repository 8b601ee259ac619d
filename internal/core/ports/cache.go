package ports

import (
	"context"
	"strconv"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
//
// Every key has an invalidation generation that Delete advances. A reader takes the
// generation before loading from the source of truth and stores the result with
// SetIfGeneration, so a value loaded before a concurrent Delete is never stored.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Generation returns the current invalidation generation of key, 0 if it was never deleted.
	Generation(ctx context.Context, key string) (int64, error)
	// SetIfGeneration stores value only while the generation of key still equals
	// generation. It reports whether the value was stored.
	SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, generation int64) (bool, error)
	// Delete removes the keys and advances their generations.
	Delete(ctx context.Context, keys ...string) error
}

// CourierInfoKey is the cache key of a courier's info read model.
func CourierInfoKey(courierID int64) string {
	return "courier:info:" + strconv.FormatInt(courierID, 10)
}
