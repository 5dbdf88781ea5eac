package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-crud-console/internal/domain/user"
)

// ListKey is the Redis key holding the cached listing.
const ListKey = "users:list"

// UserListCache stores a snapshot of the full user listing.
type UserListCache interface {
	// Get returns the cached listing. found is false on a cache miss.
	Get(ctx context.Context) (users []domain.User, found bool, err error)

	// Set stores the listing with the configured TTL.
	Set(ctx context.Context, users []domain.User) error

	// Invalidate drops the cached listing.
	Invalidate(ctx context.Context) error
}

// RedisUserListCache implements UserListCache using Redis as the backing store.
type RedisUserListCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserListCache creates a new Redis-backed listing cache.
func NewRedisUserListCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisUserListCache {
	return &RedisUserListCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get retrieves the listing from Redis.
func (c *RedisUserListCache) Get(ctx context.Context) ([]domain.User, bool, error) {
	data, err := c.client.Get(ctx, ListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("listing cache miss")
		return nil, false, nil
	}
	if err != nil {
		c.log.Error("failed to get listing from cache", zap.Error(err))
		return nil, false, err
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		c.log.Error("failed to unmarshal cached listing", zap.Error(err))
		return nil, false, err
	}

	c.log.Debug("listing cache hit", zap.Int("count", len(users)))
	return users, true, nil
}

// Set stores the listing in Redis with TTL.
func (c *RedisUserListCache) Set(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}

	data, err := json.Marshal(users)
	if err != nil {
		c.log.Error("failed to marshal listing for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, ListKey, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set listing cache", zap.Error(err))
		return err
	}

	c.log.Debug("cached listing", zap.Int("count", len(users)), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes the listing from Redis.
func (c *RedisUserListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ListKey).Err(); err != nil {
		c.log.Error("failed to invalidate listing cache", zap.Error(err))
		return err
	}

	c.log.Debug("invalidated listing cache")
	return nil
}
