// Package clientconfig reads and writes the desktop client's config file: a JSON object whose
// 'mcpServers' key maps server identifiers to launch records. Every other top-level key is passed
// through untouched.
package clientconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	magneterrors "github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/perms"
)

// KeyServers is the top-level key holding installed server records.
const KeyServers = "mcpServers"

// Config represents the client config file.
// Load should be used to create instances of Config.
type Config struct {
	servers map[string]Record
	extra   map[string]json.RawMessage
	path    string
}

// New returns an empty config that will be saved to path.
func New(path string) *Config {
	return &Config{
		servers: map[string]Record{},
		extra:   map[string]json.RawMessage{},
		path:    strings.TrimSpace(path),
	}
}

// Load reads the client config file at path.
// A missing (or empty) file yields an empty config rather than an error.
// A file that exists but can't be read is an ErrIOFailure, and one that can't be decoded is an ErrMalformed.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: client config path cannot be empty", magneterrors.ErrBadRequest)
	}

	cfg := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: failed to read client config (%s): %w", magneterrors.ErrIOFailure, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: failed to decode client config (%s): %w", magneterrors.ErrMalformed, path, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: client config (%s) is not a JSON object", magneterrors.ErrMalformed, path)
	}

	if raw, ok := fields[KeyServers]; ok {
		delete(fields, KeyServers)

		var servers map[string]Record
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf(
				"%w: failed to decode '%s' in client config (%s): %w",
				magneterrors.ErrMalformed,
				KeyServers,
				path,
				err,
			)
		}
		if servers != nil {
			cfg.servers = servers
		}
	}

	cfg.extra = fields

	return cfg, nil
}

// Path returns the file the config is loaded from and saved to.
func (c *Config) Path() string {
	return c.path
}

// Record returns the installed record for the given server identifier.
func (c *Config) Record(id string) (Record, bool) {
	r, ok := c.servers[id]
	return r, ok
}

// Records returns a copy of all installed records.
func (c *Config) Records() map[string]Record {
	return maps.Clone(c.servers)
}

// Put inserts or replaces the record for the given server identifier.
func (c *Config) Put(id string, r Record) {
	c.servers[id] = r
}

// Delete removes the record for the given server identifier, reporting whether one was present.
func (c *Config) Delete(id string) bool {
	if _, ok := c.servers[id]; !ok {
		return false
	}
	delete(c.servers, id)
	return true
}

// Passthrough returns a copy of the top-level keys this package doesn't manage.
func (c *Config) Passthrough() map[string]json.RawMessage {
	return maps.Clone(c.extra)
}

// MarshalJSON implements json.Marshaler, merging the server records back with the passthrough keys.
func (c *Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+1)
	for k, v := range c.extra {
		out[k] = v
	}
	out[KeyServers] = c.servers

	return encodeJSON(out, "")
}

// Save writes the whole config to its path as pretty-printed JSON.
// The content is written to a temporary file and renamed into place, so a reader never observes a partial write.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("%w: client config path not present", magneterrors.ErrBadRequest)
	}

	data, err := encodeJSON(c, "  ")
	if err != nil {
		return fmt.Errorf("failed to encode client config: %w", err)
	}
	data = append(data, '\n')

	if err := files.WriteFileAtomic(c.path, data, perms.RegularFile); err != nil {
		return fmt.Errorf("%w: failed to save client config: %w", magneterrors.ErrIOFailure, err)
	}

	return nil
}

// encodeJSON encodes v without HTML escaping, so '&', '<' and '>' in user values are written as typed.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
