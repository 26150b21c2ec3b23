package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterCatalogRoutes sets up the catalog sync endpoint.
func RegisterCatalogRoutes(routerAPI huma.API, source CatalogSource, apiPathPrefix string) {
	catalogAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(
		catalogAPI,
		huma.Operation{
			OperationID: "syncCatalog",
			Method:      http.MethodPost,
			Path:        "/sync",
			Summary:     "Download the catalog and store it",
			Tags:        []string{"Catalog"},
		},
		func(ctx context.Context, _ *struct{}) (*ResultResponse, error) {
			n, err := source.Syncer.Sync(ctx, source.URL)
			return result(err, fmt.Sprintf("Catalog synced (%d servers)", n)), nil
		},
	)
}
