package contracts

import (
	"context"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/servers"
)

// ServerLister provides read access to catalog projections.
type ServerLister interface {
	// Servers returns every catalog entry merged with its installed state, in catalog order.
	Servers(ctx context.Context) ([]catalog.FrontendServer, error)

	// InstalledServers returns only the catalog entries that have a record in the client config.
	InstalledServers(ctx context.Context) ([]catalog.FrontendServer, error)
}

// ServerInstaller mutates the client config on behalf of a catalog entry.
type ServerInstaller interface {
	// Install derives a launch record for the given server and writes it to the client config.
	Install(ctx context.Context, id string, opts servers.InstallOptions) error

	// Update replaces the launch record for the given server.
	Update(ctx context.Context, id string, opts servers.InstallOptions) error

	// Uninstall removes the launch record for the given server, if present.
	Uninstall(ctx context.Context, id string) error
}

// ServerManager combines read and write access to registered servers.
type ServerManager interface {
	ServerLister
	ServerInstaller
}

// CatalogSyncer refreshes the catalog stored under the servers key.
type CatalogSyncer interface {
	// Sync downloads the catalog at url and stores it, returning the number of entries.
	Sync(ctx context.Context, url string) (int, error)
}
