package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects the durable slot implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps the slot in an embedded SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageBolt keeps the slot in a BoltDB file.
	StorageBolt StorageBackend = "bolt"

	// StorageMemory keeps the slot in memory; nothing survives a restart.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageBolt, StorageMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if state survives a process restart.
func (b StorageBackend) IsDurable() bool {
	return b == StorageSQLite || b == StorageBolt
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (embedded database)"
	case StorageBolt:
		return "BoltDB (embedded key/value file)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// PaginationPolicy controls how tall content is laid onto PDF pages.
type PaginationPolicy string

// Available pagination policies.
const (
	// PaginateSingle places the whole raster on one page; overflow is clipped.
	PaginateSingle PaginationPolicy = "single"

	// PaginateMulti continues overflowing content on further pages.
	PaginateMulti PaginationPolicy = "paginate"
)

// IsValid returns true if the policy is recognised.
func (p PaginationPolicy) IsValid() bool {
	return p == PaginateSingle || p == PaginateMulti
}

// String returns the string representation.
func (p PaginationPolicy) String() string {
	return string(p)
}

// MinRasterScale is the lowest supersampling factor that keeps text legible.
const MinRasterScale = 2.0

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	Backend StorageBackend
	Path    string
}

// ExportSettings holds PDF export configuration.
type ExportSettings struct {
	OutputDir  string
	Scale      float64
	Pagination PaginationPolicy
}

// PrintSettings holds print export configuration.
type PrintSettings struct {
	// TeardownDelay is how long the print surface stays open after the
	// dialog was triggered.
	TeardownDelay time.Duration
}

// Settings is the complete application configuration.
type Settings struct {
	Storage          StorageSettings
	Export           ExportSettings
	Print            PrintSettings
	WatermarkEnabled bool
	Verbose          bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Backend: StorageSQLite},
		Export: ExportSettings{
			OutputDir:  ".",
			Scale:      MinRasterScale,
			Pagination: PaginateMulti,
		},
		Print:            PrintSettings{TeardownDelay: time.Second},
		WatermarkEnabled: true,
	}
}
