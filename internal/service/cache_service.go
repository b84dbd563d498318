package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

const (
	cacheKeyAvailability = "repair:availability"
	cacheKeyJobList      = "repair:jobs"
	cacheKeyPrefix       = "repair:*"
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the Redis cache for read-side payloads. Every job or
// technician mutation invalidates the whole namespace; the availability view
// is advisory so a short TTL bounds staleness even without invalidation.
type CacheService struct {
	store           cacheStore
	metrics         *MetricsService
	availabilityTTL time.Duration
	jobListTTL      time.Duration
	enabled         bool
	logger          *zap.Logger
}

// NewCacheService constructs a CacheService. A nil store disables caching.
func NewCacheService(store cacheStore, metrics *MetricsService, availabilityTTL, jobListTTL time.Duration, enabled bool, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if availabilityTTL <= 0 {
		availabilityTTL = 30 * time.Second
	}
	if jobListTTL <= 0 {
		jobListTTL = 30 * time.Second
	}
	return &CacheService{
		store:           store,
		metrics:         metrics,
		availabilityTTL: availabilityTTL,
		jobListTTL:      jobListTTL,
		enabled:         enabled && store != nil,
		logger:          logger,
	}
}

// GetAvailability loads the cached availability view. Returns false on miss.
func (s *CacheService) GetAvailability(ctx context.Context, dest interface{}) bool {
	if s == nil || !s.enabled {
		return false
	}
	start := time.Now()
	err := s.store.Get(ctx, cacheKeyAvailability, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("availability cache read failed", zap.Error(err))
	}
	return hit
}

// SetAvailability stores the availability view.
func (s *CacheService) SetAvailability(ctx context.Context, value interface{}) {
	if s == nil || !s.enabled {
		return
	}
	start := time.Now()
	if err := s.store.Set(ctx, cacheKeyAvailability, value, s.availabilityTTL); err != nil {
		s.logger.Warn("availability cache write failed", zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
}

// GetJobList loads the cached job listing. Returns false on miss.
func (s *CacheService) GetJobList(ctx context.Context, dest interface{}) bool {
	if s == nil || !s.enabled {
		return false
	}
	start := time.Now()
	err := s.store.Get(ctx, cacheKeyJobList, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("job list cache read failed", zap.Error(err))
	}
	return hit
}

// SetJobList stores the job listing.
func (s *CacheService) SetJobList(ctx context.Context, value interface{}) {
	if s == nil || !s.enabled {
		return
	}
	start := time.Now()
	if err := s.store.Set(ctx, cacheKeyJobList, value, s.jobListTTL); err != nil {
		s.logger.Warn("job list cache write failed", zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
}

// Invalidate drops every cached read-side payload.
func (s *CacheService) Invalidate(ctx context.Context) {
	if s == nil || !s.enabled {
		return
	}
	if err := s.store.DeleteByPattern(ctx, cacheKeyPrefix); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
