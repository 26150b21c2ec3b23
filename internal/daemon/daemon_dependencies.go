package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/contracts"
)

// Dependencies contains required dependencies for the Daemon.
type Dependencies struct {
	// APIAddr specifies the network address for the APIServer to bind (e.g. "localhost:8090").
	APIAddr string

	// CatalogURL is where the catalog is downloaded from, both on request and on refresh.
	CatalogURL string

	// Logger for daemon and subcomponent (API server) operations.
	Logger hclog.Logger

	// Manager reads and mutates the client config.
	Manager contracts.ServerManager

	// Syncer refreshes the stored catalog.
	Syncer contracts.CatalogSyncer

	// Version is reported in the OpenAPI document.
	Version string
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	if err := IsValidAddr(d.APIAddr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.APIAddr, err)
	}
	if d.Manager == nil || reflect.ValueOf(d.Manager).IsNil() {
		return fmt.Errorf("server manager cannot be nil")
	}
	if d.Syncer == nil || reflect.ValueOf(d.Syncer).IsNil() {
		return fmt.Errorf("catalog syncer cannot be nil")
	}
	if d.CatalogURL == "" {
		return fmt.Errorf("catalog URL cannot be empty")
	}
	return nil
}
