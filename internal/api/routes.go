package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/magnetlabs/magnet/internal/contracts"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// CatalogSource identifies where catalog sync requests download from.
type CatalogSource struct {
	Syncer contracts.CatalogSyncer
	URL    string
}

// RegisterRoutes registers all API routes on the provided Huma router.
// Returns the API path prefix (e.g. "/api/v1") under which the routes are created.
func RegisterRoutes(router huma.API, manager contracts.ServerManager, source CatalogSource) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if manager == nil || reflect.ValueOf(manager).IsNil() {
		return "", fmt.Errorf("server manager cannot be nil")
	}
	if source.Syncer == nil || reflect.ValueOf(source.Syncer).IsNil() {
		return "", fmt.Errorf("catalog syncer cannot be nil")
	}
	if source.URL == "" {
		return "", fmt.Errorf("catalog URL cannot be empty")
	}

	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterHealthRoutes(versionedGroup, "/health")
	RegisterServerRoutes(versionedGroup, manager, "/servers")
	RegisterCatalogRoutes(versionedGroup, source, "/catalog")

	return apiPathPrefix, nil
}
