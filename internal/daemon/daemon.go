package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/magnetlabs/magnet/internal/api"
	"github.com/magnetlabs/magnet/internal/contracts"
)

// Daemon serves the HTTP API and keeps the stored catalog fresh.
type Daemon struct {
	logger          hclog.Logger
	apiServer       *APIServer
	syncer          contracts.CatalogSyncer
	catalogURL      string
	refreshInterval time.Duration
	syncOnStart     bool
}

// NewDaemon creates a new Daemon instance with the given dependencies and options.
func NewDaemon(deps Dependencies, opt ...Option) (*Daemon, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid daemon dependencies: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon options: %w", err)
	}

	apiServer, err := NewAPIServer(
		APIDependencies{
			Addr:    deps.APIAddr,
			Manager: deps.Manager,
			Catalog: api.CatalogSource{Syncer: deps.Syncer, URL: deps.CatalogURL},
			Logger:  deps.Logger,
		},
		deps.Version,
		opts.APIOptions...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon API server: %w", err)
	}

	return &Daemon{
		logger:          deps.Logger.Named("daemon"),
		apiServer:       apiServer,
		syncer:          deps.Syncer,
		catalogURL:      deps.CatalogURL,
		refreshInterval: opts.RefreshInterval,
		syncOnStart:     opts.SyncOnStart,
	}, nil
}

// StartAndManage runs the API server and the catalog refresher until ctx is canceled.
// Stopping because ctx is done is not reported as an error.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	if d.syncOnStart {
		d.sync(ctx)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.apiServer.Start(gCtx)
	})

	g.Go(func() error {
		d.refreshLoop(gCtx)
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

// refreshLoop periodically re-downloads the catalog until ctx is canceled.
// Failures are logged and retried on the next tick.
func (d *Daemon) refreshLoop(ctx context.Context) {
	if d.refreshInterval <= 0 {
		return
	}

	d.logger.Info("Catalog refresh enabled", "interval", d.refreshInterval)

	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.sync(ctx)
		}
	}
}

func (d *Daemon) sync(ctx context.Context) {
	n, err := d.syncer.Sync(ctx, d.catalogURL)
	if err != nil {
		d.logger.Error("Catalog refresh failed", "url", d.catalogURL, "error", err)
		return
	}
	d.logger.Debug("Catalog refreshed", "url", d.catalogURL, "servers", n)
}
