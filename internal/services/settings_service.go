package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"infinite-experiment/crewcenter/internal/common"
	"infinite-experiment/crewcenter/internal/constants"
	"infinite-experiment/crewcenter/internal/logging"
	"infinite-experiment/crewcenter/internal/metrics"
	"infinite-experiment/crewcenter/internal/models/dtos"

	"golang.org/x/sync/singleflight"
)

const (
	defaultDuplicateWindow = 5 * time.Minute
	pirepSettingsCacheKey  = string(constants.CachePrefixSettings) + "pireps"
)

// SettingsStore is the persistence behind operator settings
type SettingsStore interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
}

// SettingsService resolves operator toggles from the settings table
type SettingsService struct {
	store   SettingsStore
	cache   common.CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
	group   singleflight.Group
}

func NewSettingsService(
	store SettingsStore,
	cache common.CacheInterface,
	ttl time.Duration,
	metricsReg *metrics.MetricsRegistry,
) *SettingsService {
	return &SettingsService{
		store:   store,
		cache:   cache,
		ttl:     ttl,
		metrics: metricsReg,
	}
}

// PirepSettings returns the toggles consumed by the PIREP workflow,
// served from cache when possible
func (s *SettingsService) PirepSettings(ctx context.Context) (dtos.PirepSettings, error) {
	var cached dtos.PirepSettings
	if s.cache.Load(pirepSettingsCacheKey, &cached) {
		s.countCache(true)
		return cached, nil
	}
	s.countCache(false)

	v, err, _ := s.group.Do(pirepSettingsCacheKey, func() (interface{}, error) {
		raw, err := s.store.All(ctx)
		if err != nil {
			return nil, err
		}
		resolved := ResolvePirepSettings(raw)
		s.cache.Set(pirepSettingsCacheKey, resolved, s.ttl)
		return resolved, nil
	})
	if err != nil {
		return dtos.PirepSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return v.(dtos.PirepSettings), nil
}

// Set stores a setting and drops the cached resolution
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if err := s.store.Upsert(ctx, key, value); err != nil {
		return err
	}
	s.cache.Delete(pirepSettingsCacheKey)
	logging.Info("Setting updated", "key", key, "value", value)
	return nil
}

func (s *SettingsService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixSettings)).Inc()
		return
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixSettings)).Inc()
}

// ResolvePirepSettings applies defaults and coercion to raw setting values
func ResolvePirepSettings(raw map[string]string) dtos.PirepSettings {
	settings := dtos.PirepSettings{
		OnlyFlightsFromCurrent:   settingBool(raw[constants.SettingOnlyFlightsFromCurrent]),
		RestrictAircraftToRank:   settingBool(raw[constants.SettingRestrictAircraftToRank]),
		OnlyAircraftAtDptAirport: settingBool(raw[constants.SettingOnlyAircraftAtDptAirport]),
		DuplicateWindow:          defaultDuplicateWindow,
	}

	if v := strings.TrimSpace(raw[constants.SettingDuplicateCheckMinutes]); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			settings.DuplicateWindow = time.Duration(minutes) * time.Minute
		}
	}

	return settings
}

func settingBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
