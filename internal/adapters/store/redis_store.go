package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"watchcatalog.app/internal/config"
	"watchcatalog.app/internal/ports"
	"watchcatalog.app/pkg/errors"
)

// RedisStore implements the CacheProvider port using Redis
type RedisStore struct {
	client *redis.Client
	stats  struct {
		hits   int64
		misses int64
		mutex  sync.RWMutex
	}
}

// NewRedisStore creates a new Redis-backed cache provider
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("failed to connect to Redis", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

// Get retrieves a value from Redis
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.recordMiss()
			return nil, errors.NewNotFoundError("cache miss")
		}
		return nil, errors.NewStoreUnavailableError("redis get operation failed", err)
	}

	r.recordHit()
	return []byte(val), nil
}

// Set stores a value in Redis with TTL
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.NewStoreUnavailableError("redis set operation failed", err)
	}

	return nil
}

// Delete removes a value from Redis
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.NewStoreUnavailableError("redis delete operation failed", err)
	}

	return nil
}

// Exists checks if a key exists in Redis
func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.NewStoreUnavailableError("redis exists operation failed", err)
	}

	return count > 0, nil
}

// Expire resets the TTL of an existing key
func (r *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	ok, err := r.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		return errors.NewStoreUnavailableError("redis expire operation failed", err)
	}
	if !ok {
		return errors.NewNotFoundError("key does not exist")
	}

	return nil
}

// TTL reports the remaining lifetime of a key
func (r *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	if key == "" {
		return 0, errors.NewValidationError("cache key cannot be empty")
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, errors.NewStoreUnavailableError("redis ttl operation failed", err)
	}
	if ttl < 0 {
		return 0, errors.NewNotFoundError("key does not exist or has no expiration")
	}

	return ttl, nil
}

// Clear removes all keys from the Redis database
func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return errors.NewStoreUnavailableError("redis clear operation failed", err)
	}

	return nil
}

// GetStats returns cache statistics
func (r *RedisStore) GetStats() ports.CacheStats {
	r.stats.mutex.RLock()
	defer r.stats.mutex.RUnlock()

	total := r.stats.hits + r.stats.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(r.stats.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        r.stats.hits,
		Misses:      r.stats.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}

func (r *RedisStore) recordHit() {
	r.stats.mutex.Lock()
	defer r.stats.mutex.Unlock()
	r.stats.hits++
}

func (r *RedisStore) recordMiss() {
	r.stats.mutex.Lock()
	defer r.stats.mutex.Unlock()
	r.stats.misses++
}

// Close closes the Redis client connection
func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewStoreUnavailableError("failed to close Redis connection", err)
	}
	return nil
}

// Ping checks if the Redis connection is alive
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewStoreUnavailableError("Redis ping failed", err)
	}
	return nil
}
