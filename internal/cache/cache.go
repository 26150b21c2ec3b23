package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/perms"
)

// maxDownloadSize bounds the size of a downloaded document.
const maxDownloadSize = 16 << 20

// Cache manages downloaded catalog documents.
// NewCache should be used to create instances of Cache.
type Cache struct {
	logger  hclog.Logger
	dir     string
	ttl     time.Duration
	enabled bool
	refresh bool
	client  *http.Client
}

// NewCache creates a new cache instance for catalog documents.
func NewCache(logger hclog.Logger, opts ...Option) (*Cache, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	if options.enabled {
		if err := files.EnsureAtLeastRegularDir(options.dir); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &Cache{
		dir:     options.dir,
		logger:  logger.Named("cache"),
		enabled: options.enabled,
		refresh: options.refresh,
		ttl:     options.ttl,
		client:  options.client,
	}, nil
}

// Fetch returns the document at rawURL.
// file:// URLs are read directly. Remote documents are served from the cache while fresh,
// downloaded otherwise, and a stale cached copy is used when a download fails.
func (c *Cache) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL '%s': %w", rawURL, err)
	}

	if u.Scheme == "file" {
		c.logger.Debug("Reading local file", "path", u.Path)
		data, err := os.ReadFile(u.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read '%s': %w", u.Path, err)
		}
		return data, nil
	}

	if !c.enabled {
		c.logger.Debug("Cache disabled, downloading", "url", rawURL)
		return c.download(ctx, rawURL)
	}

	cachePath := c.pathFor(rawURL)

	switch {
	case c.refresh:
		c.logger.Debug("Cache refresh requested", "url", rawURL)
	case c.isExpired(cachePath):
		c.logger.Debug("Cache expired or missing", "url", rawURL, "path", cachePath)
	default:
		if data, err := os.ReadFile(cachePath); err == nil {
			c.logger.Debug("Using cached file", "path", cachePath, "remote", rawURL)
			return data, nil
		}
	}

	data, err := c.download(ctx, rawURL)
	if err != nil {
		stale, readErr := os.ReadFile(cachePath)
		if readErr != nil {
			return nil, err
		}

		c.logger.Warn(
			"Failed to update cache, using stale copy",
			"url", rawURL,
			"path", cachePath,
			"error", err,
		)

		return stale, nil
	}

	if err := files.WriteFileAtomic(cachePath, data, perms.SecureFile); err != nil {
		// The download is still usable.
		c.logger.Warn("Failed to write cache file", "path", cachePath, "error", err)
	} else {
		c.logger.Debug("Successfully cached file", "url", rawURL, "path", cachePath)
	}

	return data, nil
}

// pathFor returns the cache file for a URL, named by its hash.
func (c *Cache) pathFor(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", hash))
}

// download fetches a remote document into memory.
func (c *Cache) download(ctx context.Context, url string) ([]byte, error) {
	c.logger.Debug("Downloading", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL '%s': %w", url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL '%s': %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from URL '%s': %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from URL '%s': %w", url, err)
	}
	if len(data) > maxDownloadSize {
		return nil, errors.New("response exceeds maximum download size")
	}

	return data, nil
}

// isExpired checks if a cache file is expired based on modification time.
func (c *Cache) isExpired(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true // Treat missing as expired.
	}
	return time.Since(info.ModTime()) > c.ttl
}
