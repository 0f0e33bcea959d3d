package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"watchcatalog.app/internal/config"
	"watchcatalog.app/pkg/errors"
)

// setupMockRedis creates a mock Redis server for testing
func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	mockRedis := miniredis.RunT(t)

	redisConfig := &config.RedisConfig{
		Addr:         mockRedis.Addr(),
		Password:     "",
		DB:           0,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	return mockRedis, redisConfig
}

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mockRedis, cfg := setupMockRedis(t)
	redisStore, err := NewRedisStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisStore.Close() })

	return mockRedis, redisStore
}

func TestNewRedisStore(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.RedisConfig
		expectError bool
		errorType   errors.ErrorType
	}{
		{
			name:        "NilConfig",
			config:      nil,
			expectError: true,
			errorType:   errors.ErrorTypeConfiguration,
		},
		{
			name: "ValidConfig",
			config: func() *config.RedisConfig {
				_, cfg := setupMockRedis(t)
				return cfg
			}(),
			expectError: false,
		},
		{
			name: "UnreachableAddress",
			config: &config.RedisConfig{
				Addr:         "localhost:1",
				DialTimeout:  1,
				ReadTimeout:  1,
				WriteTimeout: 1,
			},
			expectError: true,
			errorType:   errors.ErrorTypeStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisStore, err := NewRedisStore(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.errorType))
				assert.Nil(t, redisStore)
			} else {
				require.NoError(t, err)
				require.NotNil(t, redisStore)
				_ = redisStore.Close()
			}
		})
	}
}

func TestRedisStore_GetSet(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	t.Run("MissOnAbsentKey", func(t *testing.T) {
		_, err := redisStore.Get(ctx, "absent")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, redisStore.Set(ctx, "k1", []byte("v1"), time.Minute))

		val, err := redisStore.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		require.NoError(t, redisStore.Set(ctx, "k1", []byte("v2"), time.Minute))

		val, err := redisStore.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), val)
	})

	t.Run("EmptyKeyValidation", func(t *testing.T) {
		_, err := redisStore.Get(ctx, "")
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		err = redisStore.Set(ctx, "", []byte("v"), time.Minute)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("NilValueValidation", func(t *testing.T) {
		err := redisStore.Set(ctx, "k", nil, time.Minute)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("NonPositiveTTLValidation", func(t *testing.T) {
		err := redisStore.Set(ctx, "k", []byte("v"), 0)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestRedisStore_Expiration(t *testing.T) {
	mockRedis, redisStore := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, redisStore.Set(ctx, "short", []byte("v"), time.Second))

	val, err := redisStore.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	mockRedis.FastForward(2 * time.Second)

	_, err = redisStore.Get(ctx, "short")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestRedisStore_Delete(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, redisStore.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, redisStore.Delete(ctx, "k"))

	_, err := redisStore.Get(ctx, "k")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	assert.True(t, errors.IsType(redisStore.Delete(ctx, ""), errors.ErrorTypeValidation))
}

func TestRedisStore_Exists(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	exists, err := redisStore.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, redisStore.Set(ctx, "k", []byte("v"), time.Minute))

	exists, err = redisStore.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisStore_ExpireAndTTL(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, redisStore.Set(ctx, "k", []byte("v"), time.Minute))

	ttl, err := redisStore.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 1.0)

	require.NoError(t, redisStore.Expire(ctx, "k", time.Hour))

	ttl, err = redisStore.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 1.0)

	t.Run("ExpireAbsentKey", func(t *testing.T) {
		err := redisStore.Expire(ctx, "absent", time.Minute)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})

	t.Run("TTLAbsentKey", func(t *testing.T) {
		_, err := redisStore.TTL(ctx, "absent")
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestRedisStore_Clear(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, redisStore.Set(ctx, "k1", []byte("v1"), time.Minute))
	require.NoError(t, redisStore.Set(ctx, "k2", []byte("v2"), time.Minute))

	require.NoError(t, redisStore.Clear(ctx))

	_, err := redisStore.Get(ctx, "k1")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	_, err = redisStore.Get(ctx, "k2")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestRedisStore_ServerDown(t *testing.T) {
	mockRedis, redisStore := setupRedisStore(t)
	ctx := context.Background()

	mockRedis.Close()

	_, err := redisStore.Get(ctx, "k")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeStoreUnavailable))

	err = redisStore.Set(ctx, "k", []byte("v"), time.Minute)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeStoreUnavailable))
}

func TestRedisStore_Stats(t *testing.T) {
	_, redisStore := setupRedisStore(t)
	ctx := context.Background()

	_, _ = redisStore.Get(ctx, "absent")
	require.NoError(t, redisStore.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := redisStore.Get(ctx, "k")
	require.NoError(t, err)

	stats := redisStore.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.TotalOps)
	assert.Equal(t, 0.5, stats.HitRatio)
}
