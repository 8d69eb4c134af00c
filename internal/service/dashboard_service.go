package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sampark-ngo/placement-tracker/internal/models"
	appErrors "github.com/sampark-ngo/placement-tracker/pkg/errors"
)

const dashboardSummaryCacheKey = "dashboard:summary"

// aggregateReader is the slice of the record store the dashboard needs.
type aggregateReader interface {
	AggregateBy(ctx context.Context, column string) ([]models.AggregateCount, error)
}

// DashboardSummary carries the chart datasets for the landing page.
type DashboardSummary struct {
	Gender []models.AggregateCount `json:"gender"`
	Region []models.AggregateCount `json:"region"`
}

// DashboardService serves pre-aggregated chart data with cache integration.
// The boolean returned by Summary indicates a cache hit.
type DashboardService struct {
	repo    aggregateReader
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewDashboardService constructs a dashboard service.
func NewDashboardService(repo aggregateReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Summary returns gender and region distributions over all records.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, bool, error) {
	var cached DashboardSummary
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, dashboardSummaryCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	start := time.Now()
	gender, err := s.repo.AggregateBy(ctx, "gender")
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to aggregate gender distribution")
	}
	region, err := s.repo.AggregateBy(ctx, "region")
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to aggregate region distribution")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_summary", time.Since(start))
	}

	summary := &DashboardSummary{Gender: gender, Region: region}
	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardSummaryCacheKey, summary, 0); err != nil {
			s.logger.Warn("cache dashboard summary", zap.Error(err))
		}
	}
	return summary, false, nil
}
