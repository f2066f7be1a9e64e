package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"
	"cleanops_backend/pkg/utils"

	"database/sql"

	"github.com/go-redis/redis/v8"
)

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrSettingValidation = errors.New("setting validation error")
)

const settingsCacheTTL = 5 * time.Minute

// SettingsService reads and writes per-tenant configuration. Reads of the
// alert threshold are best-effort: cache first, then store, then the default
// value. A store failure on that path degrades silently rather than failing
// the operation that needed the value.
type SettingsService interface {
	AlertThreshold(ctx context.Context, owner string) time.Duration
	GetSetting(owner, key string) (*models.TenantSetting, error)
	UpdateSetting(ctx context.Context, owner, key, value string) (*models.TenantSetting, error)
	DeleteSetting(ctx context.Context, owner, key string) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cache        *redis.Client // optional; nil disables caching
	db           *sql.DB
}

// NewSettingsService creates a new instance of SettingsService. cache may be
// nil when redis is not configured.
func NewSettingsService(sr repositories.SettingsRepository, cache *redis.Client, db *sql.DB) SettingsService {
	return &settingsService{settingsRepo: sr, cache: cache, db: db}
}

func settingsCacheKey(owner, key string) string {
	return "cleanops:settings:" + owner + ":" + key
}

// AlertThreshold returns the tenant's Late grace period. Never fails: any
// read problem falls back to the default threshold.
func (s *settingsService) AlertThreshold(ctx context.Context, owner string) time.Duration {
	fallback := time.Duration(models.DefaultAlertThresholdMinutes) * time.Minute

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, settingsCacheKey(owner, models.SettingAlertThreshold)).Result(); err == nil {
			if minutes, convErr := strconv.Atoi(cached); convErr == nil && minutes > 0 {
				return time.Duration(minutes) * time.Minute
			}
		}
	}

	setting, err := s.settingsRepo.GetSetting(owner, models.SettingAlertThreshold)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			utils.LogError(err, "AlertThreshold: settings read failed, using default")
		}
		return fallback
	}

	minutes, err := strconv.Atoi(setting.Value)
	if err != nil || minutes <= 0 {
		return fallback
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settingsCacheKey(owner, models.SettingAlertThreshold), setting.Value, settingsCacheTTL).Err(); err != nil {
			utils.LogError(err, "AlertThreshold: cache write failed")
		}
	}
	return time.Duration(minutes) * time.Minute
}

func (s *settingsService) GetSetting(owner, key string) (*models.TenantSetting, error) {
	setting, err := s.settingsRepo.GetSetting(owner, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

func (s *settingsService) UpdateSetting(ctx context.Context, owner, key, value string) (*models.TenantSetting, error) {
	if utils.IsEmpty(key) || utils.IsEmpty(value) {
		return nil, fmt.Errorf("%w: key and value are required", ErrSettingValidation)
	}
	if key == models.SettingAlertThreshold {
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer of minutes", ErrSettingValidation, key)
		}
	}

	setting := &models.TenantSetting{Owner: owner, Key: key, Value: value}
	updated, err := s.settingsRepo.UpsertSetting(s.db, setting)
	if err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	s.invalidate(ctx, owner, key)
	return updated, nil
}

func (s *settingsService) DeleteSetting(ctx context.Context, owner, key string) error {
	err := s.settingsRepo.DeleteSetting(s.db, owner, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSettingNotFound
		}
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	s.invalidate(ctx, owner, key)
	return nil
}

func (s *settingsService) invalidate(ctx context.Context, owner, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, settingsCacheKey(owner, key)).Err(); err != nil {
		utils.LogError(err, "settings cache invalidation failed")
	}
}
