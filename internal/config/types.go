package config

import (
	"fmt"
	"time"
)

var _ Loader = (*DefaultLoader)(nil)

// Loader loads magnet's settings file.
type Loader interface {
	Load(path string) (*Settings, error)
}

// Initializer writes a skeleton settings file.
type Initializer interface {
	Init(path string) error
}

type DefaultLoader struct{}

const (
	// DefaultCatalogURL is where the server catalog is published.
	DefaultCatalogURL = "https://file.magnetlabs.xyz/server-configuration/servers-v0.1.json"

	// DefaultDaemonAddr is the address the daemon's API binds to.
	DefaultDaemonAddr = "localhost:8090"

	// DefaultStoreBackend is the store backend used when none is configured.
	DefaultStoreBackend = "json"
)

// DefaultCatalogCacheTTL is how long a downloaded catalog is reused before being fetched again.
func DefaultCatalogCacheTTL() time.Duration {
	return 24 * time.Hour
}

// Settings represents the settings.toml file structure.
// Every key is optional; Default describes the values used for missing keys.
//
// NOTE: if you add/remove fields you must review validate and the skeleton written by Init.
type Settings struct {
	Catalog CatalogSection `json:"catalog" toml:"catalog" yaml:"catalog"`
	Store   StoreSection   `json:"store"   toml:"store"   yaml:"store"`
	Daemon  DaemonSection  `json:"daemon"  toml:"daemon"  yaml:"daemon"`

	settingsFilePath string `toml:"-"`
}

// CatalogSection configures where the server catalog comes from.
type CatalogSection struct {
	// URL of the catalog JSON array (http, https or file).
	URL string `json:"url" toml:"url" yaml:"url"`

	// CacheTTL is how long a downloaded catalog is reused. Zero disables caching.
	CacheTTL Duration `json:"cacheTTL" toml:"cache_ttl" yaml:"cache_ttl"`

	// SchemaValidation validates catalogs against the catalog JSON schema before use.
	SchemaValidation bool `json:"schemaValidation" toml:"schema_validation" yaml:"schema_validation"`
}

// StoreSection configures the application state store.
type StoreSection struct {
	// Backend is either 'json' or 'sqlite'.
	Backend string `json:"backend" toml:"backend" yaml:"backend"`

	// Path to the store. Empty means the backend's default location.
	Path string `json:"path" toml:"path" yaml:"path"`
}

// DaemonSection configures 'magnet daemon'.
type DaemonSection struct {
	// Addr to bind the API server (e.g., "localhost:8090")
	// Maps to CLI flag --addr
	Addr string `json:"addr" toml:"addr" yaml:"addr"`

	// RefreshInterval re-syncs the catalog periodically when positive.
	// Maps to CLI flag --refresh-interval
	RefreshInterval Duration `json:"refreshInterval" toml:"refresh_interval" yaml:"refresh_interval"`

	// CORSOrigins lists the origins allowed to call the API. Empty disables CORS.
	// Maps to CLI flag --cors-origin
	CORSOrigins []string `json:"corsOrigins,omitempty" toml:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
}

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// String returns a human-readable string representation of the duration.
func (d Duration) String() string {
	duration := time.Duration(d)
	if duration == 0 {
		return "0s"
	}

	// List of duration units in descending order.
	units := []struct {
		unit   time.Duration
		suffix string
	}{
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
		{time.Millisecond, "ms"},
	}

	for _, u := range units {
		if duration%u.unit == 0 {
			return fmt.Sprintf("%d%s", duration/u.unit, u.suffix)
		}
	}

	return duration.String()
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
