package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docket/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "bolt")
	_ = store.Set("storage.path", "/var/lib/docket")
	_ = store.Set("export.output_dir", "/tmp/out")
	_ = store.Set("export.scale", int64(3))
	_ = store.Set("export.pagination", "single")
	_ = store.Set("print.teardown_delay", "250ms")
	_ = store.Set("watermark.enabled", false)
	_ = store.Set("log.verbose", true)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBolt, settings.Storage.Backend)
	assert.Equal(t, "/var/lib/docket", settings.Storage.Path)
	assert.Equal(t, "/tmp/out", settings.Export.OutputDir)
	assert.Equal(t, 3.0, settings.Export.Scale)
	assert.Equal(t, domain.PaginateSingle, settings.Export.Pagination)
	assert.Equal(t, 250*time.Millisecond, settings.Print.TeardownDelay)
	assert.False(t, settings.WatermarkEnabled)
	assert.True(t, settings.Verbose)
}

func TestLoadSettings_InvalidValues(t *testing.T) {
	tests := map[string]any{
		"storage.backend":      "postgres",
		"export.scale":         1.5,
		"export.pagination":    "spread",
		"print.teardown_delay": "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			store := memory.NewConfigStore()
			_ = store.Set(key, value)

			_, err := LoadSettings(store)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), key)
		})
	}
}

type pathConfigStore struct {
	*memory.ConfigStore
	path string
}

func (s pathConfigStore) Path() string { return s.path }

func TestLoadSettings_DataDirNextToConfig(t *testing.T) {
	store := pathConfigStore{ConfigStore: memory.NewConfigStore(), path: "/home/u/.docket/config.toml"}

	settings, err := LoadSettings(store)

	require.NoError(t, err)
	assert.Equal(t, "/home/u/.docket/data", settings.Storage.Path)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("export.scale", "4"))
	require.NoError(t, service.Set("export.pagination", "single"))
	require.NoError(t, service.Set("print.teardown_delay", "2s"))
	require.NoError(t, service.Set("watermark.enabled", "false"))
	require.NoError(t, service.Set("storage.backend", "memory"))

	val, ok := store.Get("export.scale")
	require.True(t, ok)
	assert.Equal(t, 4.0, val)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 4.0, settings.Export.Scale)
	assert.Equal(t, domain.PaginateSingle, settings.Export.Pagination)
	assert.Equal(t, 2*time.Second, settings.Print.TeardownDelay)
	assert.False(t, settings.WatermarkEnabled)
	assert.Equal(t, domain.StorageMemory, settings.Storage.Backend)
}

func TestSettingsService_SetRejects(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	tests := [][2]string{
		{"export.scale", "1"},
		{"export.scale", "NaN"},
		{"export.scale", "big"},
		{"export.pagination", "spread"},
		{"print.teardown_delay", "-1s"},
		{"watermark.enabled", "maybe"},
		{"storage.backend", "s3"},
		{"storage.path", ""},
		{"search.mode", "hybrid"},
	}
	for _, tt := range tests {
		err := service.Set(tt[0], tt[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s=%s", tt[0], tt[1])
	}
	assert.Empty(t, store.Keys())
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Contains(t, keys, "storage.backend")
	assert.Contains(t, keys, "export.scale")
	assert.Len(t, keys, 8)
}
