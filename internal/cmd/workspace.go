package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/cache"
	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/flags"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/perms"
	"github.com/magnetlabs/magnet/internal/servers"
	"github.com/magnetlabs/magnet/internal/store"
)

// Workspace holds the collaborators resolved from the global flags and the settings file.
// Close must be called to release the store.
type Workspace struct {
	Settings   *config.Settings
	Store      store.Store
	StorePath  string
	ConfigPath string

	logger hclog.Logger
}

// OpenWorkspace loads the settings file and opens the state store.
//
// Paths are resolved as flag > environment variable > settings file > default.
func OpenWorkspace(logger hclog.Logger, loader config.Loader) (*Workspace, error) {
	settings, err := loader.Load(flags.SettingsFile)
	if err != nil {
		return nil, err
	}

	backend, err := store.ParseBackend(settings.Store.Backend)
	if err != nil {
		return nil, err
	}

	storePath, err := resolveStorePath(backend, settings)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(storePath), perms.SecureDir); err != nil {
		return nil, fmt.Errorf("could not create store directory: %w", err)
	}

	st, err := store.Open(logger, backend, storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at '%s': %w", backend, storePath, err)
	}

	configPath, err := resolveClientConfigPath()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &Workspace{
		Settings:   settings,
		Store:      st,
		StorePath:  storePath,
		ConfigPath: configPath,
		logger:     logger,
	}, nil
}

// Close releases the store.
func (w *Workspace) Close() error {
	return w.Store.Close()
}

// Manager builds the reconciliation engine for the client config, launching wrapped commands with l.
func (w *Workspace) Manager(l launcher.Launcher) (*servers.Manager, error) {
	return servers.NewManager(
		w.logger,
		servers.Dependencies{
			Store:      w.Store,
			ConfigPath: w.ConfigPath,
			Launcher:   l,
		},
		servers.WithSchemaValidation(w.Settings.Catalog.SchemaValidation),
	)
}

// Syncer builds a catalog syncer backed by the download cache.
// When refresh is true the cache is bypassed for the next download.
func (w *Workspace) Syncer(refresh bool) (*catalog.Syncer, error) {
	opts := []cache.Option{cache.WithRefreshCache(refresh)}

	ttl := w.Settings.Catalog.CacheTTL.Std()
	if ttl > 0 {
		opts = append(opts, cache.WithTTL(ttl))
	} else {
		opts = append(opts, cache.WithCaching(false))
	}

	c, err := cache.NewCache(w.logger, opts...)
	if err != nil {
		return nil, err
	}

	return catalog.NewSyncer(w.logger, c, w.Store, w.Settings.Catalog.SchemaValidation)
}

func resolveStorePath(backend store.Backend, settings *config.Settings) (string, error) {
	if p := strings.TrimSpace(flags.StoreFile); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(settings.Store.Path); p != "" {
		return p, nil
	}

	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		return "", err
	}
	return store.DefaultPath(backend, dir), nil
}

func resolveClientConfigPath() (string, error) {
	if p := strings.TrimSpace(flags.ClientConfig); p != "" {
		return p, nil
	}
	return files.ClientConfigPath(goruntime.GOOS)
}
