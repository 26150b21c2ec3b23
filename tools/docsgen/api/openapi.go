//go:build docsgen_api
// +build docsgen_api

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/api"
	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/perms"
	"github.com/magnetlabs/magnet/internal/servers"
)

// stubManager provides a stub implementation for documentation generation.
type stubManager struct{}

func (s *stubManager) Servers(context.Context) ([]catalog.FrontendServer, error)          { return nil, nil }
func (s *stubManager) InstalledServers(context.Context) ([]catalog.FrontendServer, error) { return nil, nil }
func (s *stubManager) Install(context.Context, string, servers.InstallOptions) error      { return nil }
func (s *stubManager) Update(context.Context, string, servers.InstallOptions) error       { return nil }
func (s *stubManager) Uninstall(context.Context, string) error                            { return nil }

// stubSyncer provides a stub implementation for documentation generation.
type stubSyncer struct{}

func (s *stubSyncer) Sync(context.Context, string) (int, error) { return 0, nil }

// main generates the OpenAPI specification for the magnet API.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "magnet.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	// Output path for the OpenAPI spec, relative to the repository root.
	outputPath := "./docs/api/openapi.yaml"

	// Create a chi router (same as the daemon).
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	// Create Huma config and router (same as the daemon).
	router := humachi.New(mux, huma.DefaultConfig("magnet", api.APIVersion))

	// The OpenAPI spec generation only needs the route definitions, not the actual handlers.
	apiPathPrefix, err := api.RegisterRoutes(
		router,
		&stubManager{},
		api.CatalogSource{Syncer: &stubSyncer{}, URL: config.DefaultCatalogURL},
	)
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}

	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, perms.RegularDir); err != nil {
		logger.Error("failed to create docs directory", "path", docsDir, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}
