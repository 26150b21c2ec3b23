package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/api"
	"github.com/magnetlabs/magnet/internal/contracts"
)

// errorHandlerOnce guards the process-wide huma error constructor.
var errorHandlerOnce sync.Once

// APIServer manages the HTTP API for the daemon.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	logger          hclog.Logger
	manager         contracts.ServerManager
	catalog         api.CatalogSource
	addr            string
	version         string
	cors            CORSPolicy
	shutdownTimeout time.Duration
}

// NewAPIServer creates a new API server with the provided dependencies and options.
func NewAPIServer(deps APIDependencies, version string, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		manager:         deps.Manager,
		catalog:         deps.Catalog,
		addr:            deps.Addr,
		version:         version,
		cors:            apiOpts.CORS,
		shutdownTimeout: apiOpts.ShutdownTimeout,
	}, nil
}

// Handler builds the router with every API route registered under /api/v1.
func (a *APIServer) Handler() (http.Handler, error) {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if a.cors.Enabled() {
		a.logger.Info("Enabling CORS", "origins", a.cors.Origins)
		mux.Use(cors.Handler(a.cors.middlewareOptions()))
	}

	errorHandlerOnce.Do(func() {
		huma.NewErrorWithContext = api.ErrorHandler(a.logger)
	})

	router := humachi.New(mux, huma.DefaultConfig("magnet", a.version))
	prefix, err := api.RegisterRoutes(router, a.manager, a.catalog)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Routes registered", "prefix", prefix)

	return mux, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on '%s': %w", a.addr, err)
	}

	return a.serve(ctx, ln, handler)
}

func (a *APIServer) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting API server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down API server...")
		_ = srv.Shutdown(shutdownCtx)
		a.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
