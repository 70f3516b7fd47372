package services

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageBackend   = "storage.backend"
	KeyStoragePath      = "storage.path"
	KeyExportOutputDir  = "export.output_dir"
	KeyExportScale      = "export.scale"
	KeyExportPagination = "export.pagination"
	KeyPrintTeardown    = "print.teardown_delay"
	KeyWatermark        = "watermark.enabled"
	KeyVerbose          = "log.verbose"
)

var settingKeys = []string{
	KeyStorageBackend,
	KeyStoragePath,
	KeyExportOutputDir,
	KeyExportScale,
	KeyExportPagination,
	KeyPrintTeardown,
	KeyWatermark,
	KeyVerbose,
}

// defaultDataDirName is the data directory created next to the config file.
const defaultDataDirName = "data"

// LoadSettings reads settings from the config store, applying defaults
// for unset keys. Invalid values are reported as domain.ErrInvalidInput.
func LoadSettings(cfg driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if p := cfg.Path(); filepath.IsAbs(p) {
		settings.Storage.Path = filepath.Join(filepath.Dir(p), defaultDataDirName)
	}

	if v := cfg.GetString(KeyStorageBackend); v != "" {
		backend := domain.StorageBackend(v)
		if !backend.IsValid() {
			return settings, invalidSetting(KeyStorageBackend, v)
		}
		settings.Storage.Backend = backend
	}
	if v := cfg.GetString(KeyStoragePath); v != "" {
		settings.Storage.Path = v
	}
	if v := cfg.GetString(KeyExportOutputDir); v != "" {
		settings.Export.OutputDir = v
	}
	if _, ok := cfg.Get(KeyExportScale); ok {
		scale := cfg.GetFloat(KeyExportScale)
		if !validScale(scale) {
			return settings, invalidSetting(KeyExportScale, scale)
		}
		settings.Export.Scale = scale
	}
	if v := cfg.GetString(KeyExportPagination); v != "" {
		policy := domain.PaginationPolicy(v)
		if !policy.IsValid() {
			return settings, invalidSetting(KeyExportPagination, v)
		}
		settings.Export.Pagination = policy
	}
	if v := cfg.GetString(KeyPrintTeardown); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return settings, invalidSetting(KeyPrintTeardown, v)
		}
		settings.Print.TeardownDelay = d
	}
	if _, ok := cfg.Get(KeyWatermark); ok {
		settings.WatermarkEnabled = cfg.GetBool(KeyWatermark)
	}
	settings.Verbose = cfg.GetBool(KeyVerbose)

	return settings, nil
}

func validScale(scale float64) bool {
	return scale >= domain.MinRasterScale && !math.IsInf(scale, 1)
}

func invalidSetting(key string, value any) error {
	return fmt.Errorf("%w: %s = %v", domain.ErrInvalidInput, key, value)
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the effective settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	return LoadSettings(s.configStore)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Set parses, validates and stores one setting.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func parseSetting(key, value string) (any, error) {
	switch key {
	case KeyStorageBackend:
		if !domain.StorageBackend(value).IsValid() {
			return nil, invalidSetting(key, value)
		}
		return value, nil
	case KeyStoragePath, KeyExportOutputDir:
		if value == "" {
			return nil, invalidSetting(key, value)
		}
		return value, nil
	case KeyExportScale:
		scale, err := strconv.ParseFloat(value, 64)
		if err != nil || !validScale(scale) {
			return nil, invalidSetting(key, value)
		}
		return scale, nil
	case KeyExportPagination:
		if !domain.PaginationPolicy(value).IsValid() {
			return nil, invalidSetting(key, value)
		}
		return value, nil
	case KeyPrintTeardown:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, invalidSetting(key, value)
		}
		return d.String(), nil
	case KeyWatermark, KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalidSetting(key, value)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}
