// Package config loads magnet's own settings file (settings.toml).
// This is unrelated to the desktop client's config file, which is handled by the clientconfig package.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/perms"
)

// skeleton is written by Init, it documents every key with its default value.
const skeleton = `# magnet settings, every key is optional.

[catalog]
# url = "` + DefaultCatalogURL + `"
# cache_ttl = "24h"
# schema_validation = true

[store]
# backend = "json"   # json | sqlite
# path = ""

[daemon]
# addr = "` + DefaultDaemonAddr + `"
# refresh_interval = "0s"
# cors_origins = []
`

// allowedBackends mirrors the store package's backends, without depending on it.
var allowedBackends = []string{"json", "sqlite"}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	return &Settings{
		Catalog: CatalogSection{
			URL:              DefaultCatalogURL,
			CacheTTL:         Duration(DefaultCatalogCacheTTL()),
			SchemaValidation: true,
		},
		Store: StoreSection{
			Backend: DefaultStoreBackend,
		},
		Daemon: DaemonSection{
			Addr: DefaultDaemonAddr,
		},
	}
}

// Init creates a skeleton settings file at path.
func (d *DefaultLoader) Init(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("settings path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := files.WriteFileAtomic(path, []byte(skeleton), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads the settings file at path, applying defaults for missing keys.
// A missing file yields the defaults.
func (d *DefaultLoader) Load(path string) (*Settings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	cfg := Default()
	cfg.settingsFilePath = path

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: failed to stat settings file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode settings from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf(
			"%w: unknown keys in settings file (%s): %s",
			ErrConfigLoadFailed,
			path,
			strings.Join(keys, ", "),
		)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid settings (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return cfg, nil
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string {
	return s.settingsFilePath
}

// validate orchestrates validation of the settings structure.
func (s *Settings) validate() error {
	var errs []error

	if err := validateURL(s.Catalog.URL); err != nil {
		errs = append(errs, err)
	}

	if s.Catalog.CacheTTL < 0 {
		errs = append(errs, NewErrInvalidValue("catalog.cache_ttl", s.Catalog.CacheTTL.String()))
	}

	backend := strings.ToLower(strings.TrimSpace(s.Store.Backend))
	if backend == "" {
		backend = DefaultStoreBackend
	}
	if !slices.Contains(allowedBackends, backend) {
		errs = append(errs, fmt.Errorf(
			"%w, must be one of: %s",
			NewErrInvalidValue("store.backend", s.Store.Backend),
			strings.Join(allowedBackends, ", "),
		))
	}
	s.Store.Backend = backend

	if strings.TrimSpace(s.Daemon.Addr) == "" {
		errs = append(errs, NewErrInvalidValue("daemon.addr", s.Daemon.Addr))
	}

	if s.Daemon.RefreshInterval < 0 {
		errs = append(errs, NewErrInvalidValue("daemon.refresh_interval", s.Daemon.RefreshInterval.String()))
	}

	return errors.Join(errs...)
}

// validateURL ensures the catalog URL is absolute and uses a supported scheme.
func validateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return NewErrInvalidValue("catalog.url", raw)
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return NewErrInvalidValue("catalog.url", raw)
		}
	case "file":
		if u.Path == "" {
			return NewErrInvalidValue("catalog.url", raw)
		}
	default:
		return fmt.Errorf("%w, scheme must be http, https or file", NewErrInvalidValue("catalog.url", raw))
	}

	return nil
}
