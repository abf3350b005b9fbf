package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "account-item-service/internal/domain/item"
)

// ItemCache defines the interface for caching per-owner item lists.
type ItemCache interface {
	// GetList retrieves an owner's cached item list.
	// Returns nil on cache miss; a cached empty list comes back non-nil.
	GetList(ctx context.Context, ownerID string) ([]domain.Item, error)

	// SetList stores an owner's item list with the configured TTL.
	SetList(ctx context.Context, ownerID string, items []domain.Item) error

	// Invalidate drops an owner's cached list.
	Invalidate(ctx context.Context, ownerID string) error
}

// RedisItemCache implements ItemCache using Redis as the backing store.
type RedisItemCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisItemCache creates a new Redis-backed item list cache.
func NewRedisItemCache(client *redis.Client, ttl time.Duration, log *zap.Logger) ItemCache {
	return &RedisItemCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for an owner's item list.
func (c *RedisItemCache) cacheKey(ownerID string) string {
	return fmt.Sprintf("items:owner:%s", ownerID)
}

// GetList retrieves an owner's item list from Redis.
func (c *RedisItemCache) GetList(ctx context.Context, ownerID string) ([]domain.Item, error) {
	key := c.cacheKey(ownerID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.String("owner_id", ownerID))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	items := []domain.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		c.log.Error("failed to unmarshal cached items", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("owner_id", ownerID), zap.Int("count", len(items)))
	return items, nil
}

// SetList stores an owner's item list in Redis with TTL.
func (c *RedisItemCache) SetList(ctx context.Context, ownerID string, items []domain.Item) error {
	key := c.cacheKey(ownerID)

	if items == nil {
		items = []domain.Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		c.log.Error("failed to marshal items for cache", zap.String("owner_id", ownerID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("owner_id", ownerID), zap.Error(err))
		return err
	}

	c.log.Debug("cached item list", zap.String("owner_id", ownerID), zap.Int("count", len(items)), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate drops an owner's cached list from Redis.
func (c *RedisItemCache) Invalidate(ctx context.Context, ownerID string) error {
	key := c.cacheKey(ownerID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("failed to invalidate cache", zap.String("owner_id", ownerID), zap.Error(err))
		return err
	}

	c.log.Debug("invalidated cached item list", zap.String("owner_id", ownerID))
	return nil
}
