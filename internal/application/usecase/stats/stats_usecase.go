package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/creatorloop/creatorloop-api/internal/domain/stats"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

// Cache stores the last computed counters. A miss is never an error.
type Cache interface {
	GetStats(ctx context.Context) (*stats.PlatformStats, bool)
	SetStats(ctx context.Context, s *stats.PlatformStats, ttl time.Duration)
}

type StatsUseCase struct {
	source stats.Source
	cache  Cache
	logger logger.Logger
}

func NewStatsUseCase(source stats.Source, cache Cache, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{source: source, cache: cache, logger: log}
}

const statsCacheTTL = 5 * time.Minute

// GetPlatformStats serves the landing-page counters. These are cosmetic:
// when both the cache and the source fail the caller gets zero values, never
// an error, so the page keeps its loading placeholders instead of breaking.
func (uc *StatsUseCase) GetPlatformStats(ctx context.Context) *stats.PlatformStats {
	if uc.cache != nil {
		if cached, ok := uc.cache.GetStats(ctx); ok {
			return cached
		}
	}

	fresh, err := uc.source.PlatformStats(ctx)
	if err != nil {
		uc.logger.Warn("Platform stats refresh failed, serving zero values", zap.Error(err))
		return &stats.PlatformStats{}
	}

	if uc.cache != nil {
		uc.cache.SetStats(ctx, fresh, statsCacheTTL)
	}
	return fresh
}
