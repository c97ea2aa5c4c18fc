package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studylegend/mastery-service/internal/cache"
	"github.com/studylegend/mastery-service/internal/models"
)

// DefaultStatisticsTTL bounds how stale a cached aggregate may get, since
// derived statistics drift with the reference time even without new attempts.
const DefaultStatisticsTTL = 5 * time.Minute

func userStatisticsCacheKey(email string) string {
	return fmt.Sprintf("stats:user:%s", email)
}

func subjectStatisticsCacheKey(subject, email string) string {
	return fmt.Sprintf("stats:subject:%s:%s", email, subject)
}

// StatisticsCacheKeyPattern matches every cached aggregate for one user;
// writers use it to invalidate after recording an attempt.
func StatisticsCacheKeyPattern(email string) string {
	return fmt.Sprintf("stats:*:%s*", email)
}

// cachedAnalyticsService decorates AnalyticsService with a short-lived cache.
// The inner aggregation stays pure; caching lives entirely at this boundary.
type cachedAnalyticsService struct {
	inner  AnalyticsService
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedAnalyticsService(inner AnalyticsService, statsCache cache.CacheService, ttl time.Duration, logger *slog.Logger) AnalyticsService {
	if ttl <= 0 {
		ttl = DefaultStatisticsTTL
	}
	return &cachedAnalyticsService{
		inner:  inner,
		cache:  statsCache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *cachedAnalyticsService) GetUserStatistics(ctx context.Context, email string, now time.Time) (*models.UserStatistics, error) {
	key := userStatisticsCacheKey(email)

	var cached models.UserStatistics
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Warn("Statistics cache read failed", "key", key, "error", err)
	}

	stats, err := c.inner.GetUserStatistics(ctx, email, now)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, stats, c.ttl); err != nil {
		c.logger.Warn("Statistics cache write failed", "key", key, "error", err)
	}
	return stats, nil
}

func (c *cachedAnalyticsService) GetSubjectStatistics(ctx context.Context, subject, email string, now time.Time) (*models.SubjectStatistics, error) {
	key := subjectStatisticsCacheKey(subject, email)

	var cached models.SubjectStatistics
	if err := c.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Warn("Statistics cache read failed", "key", key, "error", err)
	}

	stats, err := c.inner.GetSubjectStatistics(ctx, subject, email, now)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, stats, c.ttl); err != nil {
		c.logger.Warn("Statistics cache write failed", "key", key, "error", err)
	}
	return stats, nil
}

// GetRecentActivity is cheap enough to always recompute.
func (c *cachedAnalyticsService) GetRecentActivity(ctx context.Context, email string, limit int) ([]models.ActivityItem, error) {
	return c.inner.GetRecentActivity(ctx, email, limit)
}
