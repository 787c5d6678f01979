package users

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"eventenrollment/internal/domain"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "user:"

// Cache is the subset of the Redis client the directory cache needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type cachedDirectory struct {
	origin domain.UserDirectory
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedDirectory wraps origin with a read-through Redis cache.
// Only successful lookups are cached; cache failures fall through to origin.
func NewCachedDirectory(origin domain.UserDirectory, cache Cache, ttl time.Duration, logger *slog.Logger) domain.UserDirectory {
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedDirectory{origin: origin, cache: cache, ttl: ttl, logger: logger}
}

// NewRedisClient connects to Redis at addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}

func (d *cachedDirectory) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	key := cacheKeyPrefix + userID

	data, err := d.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var profile domain.UserProfile
		if jsonErr := json.Unmarshal(data, &profile); jsonErr == nil {
			return &profile, nil
		}
		d.logger.WarnContext(ctx, "discarding malformed cached user", "user_id", userID)
	case !errors.Is(err, redis.Nil):
		d.logger.WarnContext(ctx, "user cache read failed", "user_id", userID, "error", err)
	}

	profile, err := d.origin.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := d.cache.Set(ctx, key, data, d.ttl).Err(); err != nil {
			d.logger.WarnContext(ctx, "user cache write failed", "user_id", userID, "error", err)
		}
	}
	return profile, nil
}
