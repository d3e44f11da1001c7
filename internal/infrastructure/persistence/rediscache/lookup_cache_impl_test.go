package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigiaai/vigia-provision/pkg/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*LookupCacheImpl, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewLookupCache(client, ttl, logger.NewNopLogger())
	return cache.(*LookupCacheImpl), mr
}

func TestLookupCacheSetAndGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "lookup:vni:4242", "tenant-1"))

	tenantID, ok, err := cache.Get(ctx, "lookup:vni:4242")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestLookupCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	tenantID, ok, err := cache.Get(context.Background(), "lookup:vni:9999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, tenantID)
}

func TestLookupCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "lookup:eni:eni-1", "tenant-1"))

	// Expire in both layers.
	mr.FastForward(2 * time.Minute)
	cache.local.Flush()

	_, ok, err := cache.Get(ctx, "lookup:eni:eni-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupCacheLocalLayerServesAfterRedisLoss(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "lookup:vni:1000", "tenant-1"))
	mr.Close()

	tenantID, ok, err := cache.Get(ctx, "lookup:vni:1000")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestLookupCacheRedisOutageDegradesToMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, ok, err := cache.Get(context.Background(), "lookup:vni:55")
	require.NoError(t, err)
	assert.False(t, ok)
}
