// Package servers reconciles the server catalog with the desktop client's config file:
// it projects the catalog for display and installs, updates, and uninstalls server records.
package servers

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/store"
)

// Manager reconciles the catalog held in the store with the client config file.
// NewManager should be used to create instances of Manager.
type Manager struct {
	logger     hclog.Logger
	store      store.Getter
	launcher   launcher.Launcher
	configPath string
	options    Options

	// mu guards the config file at configPath, and is shared with every Manager using the same file.
	mu *sync.RWMutex
}

// NewManager creates a Manager for the client config file named in deps.
func NewManager(logger hclog.Logger, deps Dependencies, opt ...Option) (*Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	mu, path, err := lockFor(deps.ConfigPath)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Manager{
		logger:     logger.Named("servers"),
		store:      deps.Store,
		launcher:   deps.Launcher,
		configPath: path,
		options:    opts,
		mu:         mu,
	}, nil
}

// ConfigPath returns the absolute path of the client config file being managed.
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// Servers returns every catalog server, in catalog order, joined with its installed state.
func (m *Manager) Servers(ctx context.Context) ([]catalog.FrontendServer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, defs, err := m.catalog(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := clientconfig.Load(m.configPath)
	if err != nil {
		return nil, err
	}

	installed := make(map[string]catalog.Installation)
	for id, rec := range cfg.Records() {
		installed[id] = rec.Installation()
	}

	return catalog.Project(defs, installed), nil
}

// InstalledServers returns the catalog servers that are installed, in catalog order.
// Records for servers the catalog doesn't know are not included.
func (m *Manager) InstalledServers(ctx context.Context) ([]catalog.FrontendServer, error) {
	all, err := m.Servers(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.Installed(all), nil
}

// Install writes the record for the catalog server with the given identifier,
// replacing any existing record for it.
func (m *Manager) Install(ctx context.Context, id string, opts InstallOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.resolve(ctx, id, opts)
	if err != nil {
		return err
	}

	cfg, err := clientconfig.Load(m.configPath)
	if err != nil {
		return err
	}

	return m.install(cfg, id, rec)
}

// Uninstall removes the record for the given identifier.
// Uninstalling a server that isn't installed succeeds and leaves the file untouched.
func (m *Manager) Uninstall(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := clientconfig.Load(m.configPath)
	if err != nil {
		return err
	}

	return m.uninstall(cfg, id)
}

// Update replaces the record for the given identifier by uninstalling and then installing it,
// so that updates go through the same derivation as installs.
// A server that isn't installed is simply installed.
// Both steps happen under one lock, so no other caller observes the server as uninstalled in between.
func (m *Manager) Update(ctx context.Context, id string, opts InstallOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Resolve first so a stale identifier never removes the existing record.
	rec, err := m.resolve(ctx, id, opts)
	if err != nil {
		return err
	}

	cfg, err := clientconfig.Load(m.configPath)
	if err != nil {
		return err
	}

	if err := m.uninstall(cfg, id); err != nil {
		return err
	}

	return m.install(cfg, id, rec)
}

// catalog loads the store state and decodes its catalog.
func (m *Manager) catalog(ctx context.Context) (store.State, []catalog.Definition, error) {
	state, err := store.LoadState(ctx, m.store)
	if err != nil {
		return store.State{}, nil, err
	}

	inner, err := catalog.Unwrap(state.Servers)
	if err != nil {
		return store.State{}, nil, err
	}

	if m.options.SchemaValidation {
		if err := catalog.Validate(inner); err != nil {
			return store.State{}, nil, err
		}
	}

	defs, err := catalog.DecodeInner[catalog.Definition](inner)
	if err != nil {
		return store.State{}, nil, err
	}

	return state, defs, nil
}

// resolve finds the definition for id and derives its record.
func (m *Manager) resolve(ctx context.Context, id string, opts InstallOptions) (clientconfig.Record, error) {
	state, defs, err := m.catalog(ctx)
	if err != nil {
		return clientconfig.Record{}, err
	}

	def, ok := catalog.Find(defs, id)
	if !ok {
		return clientconfig.Record{}, fmt.Errorf("%w: '%s'", errors.ErrServerNotFound, id)
	}

	d := deriver{
		logger:    m.logger,
		launcher:  m.launcher,
		toolchain: state.Toolchain,
		creator:   m.options.Creator,
	}

	return d.derive(def, opts)
}

func (m *Manager) install(cfg *clientconfig.Config, id string, rec clientconfig.Record) error {
	cfg.Put(id, rec)
	if err := cfg.Save(); err != nil {
		return err
	}

	m.logger.Info("Server installed", "id", id, "command", rec.Command, "config", m.configPath)
	return nil
}

func (m *Manager) uninstall(cfg *clientconfig.Config, id string) error {
	if !cfg.Delete(id) {
		m.logger.Debug("Server not installed, nothing to remove", "id", id)
		return nil
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	m.logger.Info("Server uninstalled", "id", id, "config", m.configPath)
	return nil
}
