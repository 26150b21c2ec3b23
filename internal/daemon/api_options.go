package daemon

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
)

const (
	defaultCORSMaxAge      = 5 * time.Minute
	defaultShutdownTimeout = 5 * time.Second
)

// corsMethods are the methods the API routes answer to.
var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

// corsHeaders are the request headers a webview needs to send JSON bodies.
var corsHeaders = []string{"Accept", "Accept-Language", "Content-Language", "Content-Type"}

// APIOptions contains optional configuration for the API server.
// NewAPIOptions should be used to create instances of APIOptions.
type APIOptions struct {
	// CORS controls which browser origins (e.g. the desktop webview) may call the API.
	CORS CORSPolicy

	// ShutdownTimeout bounds graceful shutdown once the daemon is asked to stop.
	ShutdownTimeout time.Duration
}

// CORSPolicy is the cross-origin policy of the API server.
// The zero value allows no origins, which leaves CORS disabled.
type CORSPolicy struct {
	// Origins allowed to call the API, "*" allows any origin.
	Origins []string

	// Credentials allows cookies and auth headers on cross-origin requests.
	// Ignored for a wildcard origin.
	Credentials bool

	// MaxAge is how long browsers may cache a preflight response.
	MaxAge time.Duration
}

// Enabled reports whether any origin is allowed.
func (p CORSPolicy) Enabled() bool {
	return len(p.Origins) > 0
}

// middlewareOptions translates the policy for go-chi/cors.
func (p CORSPolicy) middlewareOptions() cors.Options {
	origins := make([]string, 0, len(p.Origins))
	for _, o := range p.Origins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	credentials := p.Credentials
	if slices.Contains(origins, "*") {
		// Browsers reject credentialed responses for a wildcard origin.
		origins = []string{"*"}
		credentials = false
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   corsMethods,
		AllowedHeaders:   corsHeaders,
		AllowCredentials: credentials,
		MaxAge:           int(p.MaxAge.Seconds()),
	}
}

// APIOption defines a functional option for configuring APIOptions.
// Options are applied in order, with later options overriding earlier ones.
type APIOption func(*APIOptions) error

// NewAPIOptions creates APIOptions with optional configurations applied on top of the defaults.
func NewAPIOptions(opts ...APIOption) (APIOptions, error) {
	options := APIOptions{
		CORS:            CORSPolicy{MaxAge: defaultCORSMaxAge},
		ShutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return APIOptions{}, err
		}
	}

	return options, nil
}

// WithCORSAllowOrigins sets the allowed origins, an empty list disables CORS.
func WithCORSAllowOrigins(origins []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.Origins = slices.Clone(origins)
		return nil
	}
}

// WithCORSAllowCredentials sets whether credentials are allowed in CORS requests.
func WithCORSAllowCredentials(allowed bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.Credentials = allowed
		return nil
	}
}

// WithCORSMaxAge sets how long browsers can cache CORS preflight responses.
func WithCORSMaxAge(maxAge time.Duration) APIOption {
	return func(o *APIOptions) error {
		if maxAge < 0 {
			return fmt.Errorf("CORS max age cannot be negative, got %v", maxAge)
		}
		o.CORS.MaxAge = maxAge
		return nil
	}
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) APIOption {
	return func(o *APIOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// IsValidAddr checks that addr is "host:port" with a numeric or well-known port.
// An empty host listens on every interface.
func IsValidAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	switch {
	case err != nil:
		return fmt.Errorf("invalid address format: %w", err)
	case port == "":
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err == nil {
		return nil
	}
	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid address port: %s", port)
	}

	return nil
}
