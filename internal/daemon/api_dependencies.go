package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/api"
	"github.com/magnetlabs/magnet/internal/contracts"
)

// APIDependencies contains the required external dependencies for the API server.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g. "localhost:8090").
	Addr string

	// Manager reads and mutates the client config.
	Manager contracts.ServerManager

	// Catalog is used by the catalog sync endpoint.
	Catalog api.CatalogSource

	// Logger for API server operations.
	Logger hclog.Logger
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := IsValidAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Manager == nil || reflect.ValueOf(d.Manager).IsNil() {
		return fmt.Errorf("server manager cannot be nil")
	}
	if d.Catalog.Syncer == nil || reflect.ValueOf(d.Catalog.Syncer).IsNil() {
		return fmt.Errorf("catalog syncer cannot be nil")
	}
	if d.Catalog.URL == "" {
		return fmt.Errorf("catalog URL cannot be empty")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
