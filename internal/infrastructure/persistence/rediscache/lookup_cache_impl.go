package rediscache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/vigiaai/vigia-provision/internal/domain/service"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// LookupCacheImpl is a two-level tenant lookup cache. The local layer absorbs
// repeated lookups within one process; Redis shares resolutions across
// replicas. Redis outages degrade to local-only caching instead of failing
// the lookup.
type LookupCacheImpl struct {
	client *redis.Client
	local  *gocache.Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewLookupCache creates the tenant lookup cache. The local layer uses a
// quarter of the Redis TTL so stale local entries converge on the shared
// value quickly.
func NewLookupCache(client *redis.Client, ttl time.Duration, log logger.Logger) service.TenantLookupCache {
	localTTL := ttl / 4
	if localTTL <= 0 {
		localTTL = time.Minute
	}
	return &LookupCacheImpl{
		client: client,
		local:  gocache.New(localTTL, 2*localTTL),
		ttl:    ttl,
		logger: log.WithComponent("lookup_cache"),
	}
}

// Get returns the cached tenant id for the key. A miss is ("", false, nil).
func (c *LookupCacheImpl) Get(ctx context.Context, key string) (string, bool, error) {
	if v, found := c.local.Get(key); found {
		return v.(string), true, nil
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		c.logger.Warn(ctx, "Redis lookup failed, treating as miss",
			logger.String("key", key),
			logger.Err(err),
		)
		return "", false, nil
	}

	c.local.SetDefault(key, val)
	return val, true, nil
}

// Set stores the resolution in both layers.
func (c *LookupCacheImpl) Set(ctx context.Context, key, tenantID string) error {
	c.local.SetDefault(key, tenantID)

	if err := c.client.Set(ctx, key, tenantID, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "Failed to cache lookup in redis",
			logger.String("key", key),
			logger.Err(err),
		)
		return apperrors.ErrInternal("lookup cache write failed").WithCause(err)
	}
	return nil
}
