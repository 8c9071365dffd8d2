package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	profileUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/profile"
	"github.com/creatorloop/creatorloop-api/internal/domain/stats"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// RedisCache backs both the public-profile cache and the platform-stats
// cache. Every failure is swallowed into a miss: the cache is an
// optimization, never a dependency.
type RedisCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisCache(rdb *redis.Client, log logger.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, logger: log}
}

const (
	profileKeyPrefix = "profile:"
	statsKey         = "platform:stats"
)

func (c *RedisCache) GetProfile(ctx context.Context, username string) (*profileUC.PublicProfile, bool) {
	data, err := c.rdb.Get(ctx, profileKeyPrefix+username).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Profile cache read failed", zap.String("username", username), zap.Error(err))
		}
		return nil, false
	}

	var p profileUC.PublicProfile
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("Profile cache entry corrupt, dropping", zap.String("username", username), zap.Error(err))
		c.rdb.Del(ctx, profileKeyPrefix+username)
		return nil, false
	}
	return &p, true
}

func (c *RedisCache) SetProfile(ctx context.Context, username string, p *profileUC.PublicProfile, ttl time.Duration) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("Failed to marshal profile for cache", zap.String("username", username), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, profileKeyPrefix+username, data, ttl).Err(); err != nil {
		c.logger.Warn("Profile cache write failed", zap.String("username", username), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, username string) {
	if err := c.rdb.Del(ctx, profileKeyPrefix+username).Err(); err != nil {
		c.logger.Warn("Profile cache invalidation failed", zap.String("username", username), zap.Error(err))
	}
}

func (c *RedisCache) GetStats(ctx context.Context) (*stats.PlatformStats, bool) {
	data, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Stats cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var s stats.PlatformStats
	if err := json.Unmarshal(data, &s); err != nil {
		c.rdb.Del(ctx, statsKey)
		return nil, false
	}
	return &s, true
}

func (c *RedisCache) SetStats(ctx context.Context, s *stats.PlatformStats, ttl time.Duration) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsKey, data, ttl).Err(); err != nil {
		c.logger.Warn("Stats cache write failed", zap.Error(err))
	}
}
