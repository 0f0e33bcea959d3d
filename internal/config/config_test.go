package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"watchcatalog.app/pkg/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, 15, cfg.Cache.DefaultTTLMinutes)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 0, cfg.Cache.Redis.DB)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_RedisFromEnvironment(t *testing.T) {
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_DEFAULT_TTL_MINUTES", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
	assert.Equal(t, "redis.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, 30, cfg.Cache.DefaultTTLMinutes)
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "InvalidCacheType", key: "CACHE_TYPE", value: "memcached"},
		{name: "ZeroTTL", key: "CACHE_DEFAULT_TTL_MINUTES", value: "0"},
		{name: "TTLAboveLimit", key: "CACHE_DEFAULT_TTL_MINUTES", value: "2000"},
		{name: "InvalidServerPort", key: "SERVER_PORT", value: "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfiguration))
		})
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*RedisConfig)
		expectError bool
	}{
		{name: "Valid", mutate: func(r *RedisConfig) {}, expectError: false},
		{name: "EmptyAddr", mutate: func(r *RedisConfig) { r.Addr = "" }, expectError: true},
		{name: "NegativeDB", mutate: func(r *RedisConfig) { r.DB = -1 }, expectError: true},
		{name: "DBAboveLimit", mutate: func(r *RedisConfig) { r.DB = 16 }, expectError: true},
		{name: "ZeroDialTimeout", mutate: func(r *RedisConfig) { r.DialTimeout = 0 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RedisConfig{
				Addr:         "localhost:6379",
				DB:           0,
				DialTimeout:  5,
				ReadTimeout:  3,
				WriteTimeout: 3,
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCacheTypeFromString(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, CacheTypeFromString("memory"))
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString("redis"))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("bogus"))
}
