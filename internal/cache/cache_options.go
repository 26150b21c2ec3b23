package cache

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/magnetlabs/magnet/internal/files"
)

const (
	// DefaultTTL is how long a cached catalog stays fresh.
	DefaultTTL = 24 * time.Hour

	// cacheSubdir is created under the user's cache directory.
	cacheSubdir = "catalog"

	downloadTimeout = 30 * time.Second
)

// Option defines a functional option for configuring Cache.
type Option func(*Options) error

// Options contains optional configuration for the cache.
// An empty dir resolves to DefaultDir when the cache is created.
type Options struct {
	dir     string
	ttl     time.Duration
	enabled bool
	refresh bool
	client  *http.Client
}

// NewOptions applies opts on top of the defaults, skipping nil options.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		ttl:     DefaultTTL,
		enabled: true,
		client:  &http.Client{Timeout: downloadTimeout},
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	if o.dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Options{}, err
		}
		o.dir = dir
	}

	return o, nil
}

// DefaultDir returns the directory downloaded catalogs are cached in.
func DefaultDir() (string, error) {
	dir, err := files.UserSpecificCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheSubdir), nil
}

// WithDirectory sets the cache directory.
func WithDirectory(dir string) Option {
	return func(o *Options) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return fmt.Errorf("cache directory cannot be empty")
		}
		o.dir = dir
		return nil
	}
}

// WithTTL sets how long a cached download is reused.
// Use WithCaching(false) rather than a zero TTL to skip the cache.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("TTL must be positive, got %v", ttl)
		}
		o.ttl = ttl
		return nil
	}
}

// WithCaching configures whether downloads are read from and written to the cache directory.
func WithCaching(enabled bool) Option {
	return func(o *Options) error {
		o.enabled = enabled
		return nil
	}
}

// WithRefreshCache ignores fresh cache entries and downloads again.
// A stale entry is still used when the download fails.
func WithRefreshCache(refresh bool) Option {
	return func(o *Options) error {
		o.refresh = refresh
		return nil
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.client = client
		return nil
	}
}
