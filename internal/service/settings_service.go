package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/scholarpath/intake-api/internal/models"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

const logoCacheKey = "settings:logo"

type settingsRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

type settingsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SettingsService serves the single logo entry with a read-through cache.
type SettingsService struct {
	repo         settingsRepository
	cache        settingsCache
	metrics      *MetricsService
	logger       *zap.Logger
	cacheTTL     time.Duration
	queryTimeout time.Duration
}

// NewSettingsService creates an instance of SettingsService.
func NewSettingsService(repo settingsRepository, cache settingsCache, metrics *MetricsService, cacheTTL, queryTimeout time.Duration, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &SettingsService{repo: repo, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL, queryTimeout: queryTimeout}
}

// GetLogo returns the stored logo value, or nil when none has been uploaded.
func (s *SettingsService) GetLogo(ctx context.Context) (*string, error) {
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, logoCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("logo cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	setting, err := s.repo.Get(ctx, models.SettingKeyLogo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(err, "failed to fetch logo")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, logoCacheKey, setting.Value, s.cacheTTL); err != nil {
			s.logger.Warn("logo cache write failed", zap.Error(err))
		}
	}

	return &setting.Value, nil
}

// UpdateLogo creates or replaces the logo entry and invalidates the cache.
func (s *SettingsService) UpdateLogo(ctx context.Context, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	setting := &models.Setting{Key: models.SettingKeyLogo, Value: value}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return storeError(err, "failed to update logo")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, logoCacheKey); err != nil {
			s.logger.Warn("logo cache invalidation failed", zap.Error(err))
		}
	}

	return nil
}
