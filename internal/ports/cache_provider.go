package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for key-value store operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Clear(ctx context.Context) error
}

// CacheSerializer defines the contract for encoding cached results
type CacheSerializer interface {
	// Serialize converts a supported value into its transportable byte form
	Serialize(value interface{}) ([]byte, error)
	// Deserialize decodes the byte form back into its generic value shape
	Deserialize(data []byte) (interface{}, error)
	// DeserializeInto decodes the byte form into a typed target
	DeserializeInto(data []byte, target interface{}) error
}

// KeyDeriver defines the contract for cache key derivation
type KeyDeriver interface {
	// Derive produces a stable key from an operation prefix and its
	// positional and named call arguments
	Derive(prefix string, args []interface{}, named map[string]interface{}) (string, error)
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
	RecordOperation(operation string, duration time.Duration)
}

// CacheStats represents a snapshot of cache performance counters
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}
