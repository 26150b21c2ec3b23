package daemon

import (
	"fmt"
	"time"
)

// Options contains optional configuration for the daemon.
// NewOptions should be used to create instances of Options.
type Options struct {
	// APIOptions contains functional options for the API server.
	APIOptions []APIOption

	// RefreshInterval is how often the catalog is re-downloaded. Zero disables periodic refresh.
	RefreshInterval time.Duration

	// SyncOnStart downloads the catalog once before serving requests.
	SyncOnStart bool
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
func NewOptions(opts ...Option) (Options, error) {
	var options Options

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithAPIOptions configures API server options.
// Replaces all previous API configuration including CORS settings.
func WithAPIOptions(apiOpts ...APIOption) Option {
	return func(o *Options) error {
		o.APIOptions = apiOpts
		return nil
	}
}

// WithRefreshInterval configures periodic catalog refresh.
func WithRefreshInterval(interval time.Duration) Option {
	return func(o *Options) error {
		if interval < 0 {
			return fmt.Errorf("refresh interval cannot be negative, got %v", interval)
		}
		o.RefreshInterval = interval
		return nil
	}
}

// WithSyncOnStart configures whether the catalog is downloaded when the daemon starts.
func WithSyncOnStart(enabled bool) Option {
	return func(o *Options) error {
		o.SyncOnStart = enabled
		return nil
	}
}
