package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"watchcatalog.app/pkg/errors"
)

func TestMemoryStore_GetSet(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	t.Run("MissOnAbsentKey", func(t *testing.T) {
		_, err := memory.Get(ctx, "absent")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, memory.Set(ctx, "k1", []byte("v1"), time.Minute))

		val, err := memory.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)
	})

	t.Run("EmptyKeyValidation", func(t *testing.T) {
		_, err := memory.Get(ctx, "")
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

		err = memory.Set(ctx, "", []byte("v"), time.Minute)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})

	t.Run("NonPositiveTTLValidation", func(t *testing.T) {
		err := memory.Set(ctx, "k", []byte("v"), -time.Second)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestMemoryStore_Expiration(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, memory.Set(ctx, "short", []byte("v"), 20*time.Millisecond))

	val, err := memory.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	time.Sleep(30 * time.Millisecond)

	_, err = memory.Get(ctx, "short")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	exists, err := memory.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_Delete(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, memory.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, memory.Delete(ctx, "k"))

	_, err := memory.Get(ctx, "k")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryStore_ExpireAndTTL(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, memory.Set(ctx, "k", []byte("v"), time.Minute))

	ttl, err := memory.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 1.0)

	require.NoError(t, memory.Expire(ctx, "k", time.Hour))

	ttl, err = memory.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 1.0)

	err = memory.Expire(ctx, "absent", time.Minute)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryStore_Clear(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, memory.Set(ctx, "k1", []byte("v1"), time.Minute))
	require.NoError(t, memory.Set(ctx, "k2", []byte("v2"), time.Minute))
	require.NoError(t, memory.Clear(ctx))

	_, err := memory.Get(ctx, "k1")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryStore_Stats(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()

	_, _ = memory.Get(ctx, "absent")
	require.NoError(t, memory.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := memory.Get(ctx, "k")
	require.NoError(t, err)

	stats := memory.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRatio)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	memory := NewMemoryStore()
	ctx := context.Background()
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = memory.Set(ctx, "shared", []byte("v"), time.Minute)
				_, _ = memory.Get(ctx, "shared")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	val, err := memory.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
