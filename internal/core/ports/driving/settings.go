package driving

import "github.com/custodia-labs/docket/internal/core/domain"

// SettingsService reads and edits application settings.
type SettingsService interface {
	// Get returns the effective settings with defaults applied.
	Get() (domain.Settings, error)

	// Set validates and stores one setting by key.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string
}
