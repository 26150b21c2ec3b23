// Package store adapts the application's string-keyed key/value state store into the typed state the
// reconciliation engine consumes. The store itself is written by collaborators (dependency provisioning
// and catalog sync); the engine only reads it.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/runtime"
)

// Keys read from the store.
const (
	KeyServers       = "servers"
	KeyNodePath      = "node_path"
	KeyUVPath        = "uv_path"
	KeyUseSystemNode = "use_system_node"
	KeyUseSystemUV   = "use_system_uv"
)

var (
	_ Store = (*JSONFileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Getter reads values from a key/value store.
type Getter interface {
	// Get returns the JSON value stored under key, and false if the key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
}

// Setter writes values to a key/value store.
type Setter interface {
	// Set stores the JSON encoding of value under key.
	Set(ctx context.Context, key string, value any) error
}

// Store is a key/value store holding JSON values.
type Store interface {
	Getter
	Setter
	Close() error
}

// State is the typed view of the store that the reconciliation engine is constructed with.
type State struct {
	// Servers is the raw catalog value: a JSON string containing a JSON array of server definitions.
	Servers json.RawMessage

	// Toolchain describes where the runtime tools live.
	Toolchain runtime.Toolchain
}

// LoadState reads every key the engine needs.
// A missing catalog is an error, since it must have been provisioned before reconciliation runs.
// Missing runtime keys default to an empty path and a private (non-system) copy.
func LoadState(ctx context.Context, g Getter) (State, error) {
	servers, ok, err := g.Get(ctx, KeyServers)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, fmt.Errorf("%w: '%s' (run: 'magnet catalog sync')", errors.ErrStoreKeyMissing, KeyServers)
	}

	tc, err := LoadToolchain(ctx, g)
	if err != nil {
		return State{}, err
	}

	return State{Servers: servers, Toolchain: tc}, nil
}

// LoadToolchain reads the runtime tool keys.
func LoadToolchain(ctx context.Context, g Getter) (runtime.Toolchain, error) {
	var tc runtime.Toolchain
	var err error

	if tc.Node.Path, err = getOr(ctx, g, KeyNodePath, ""); err != nil {
		return runtime.Toolchain{}, err
	}
	if tc.Node.System, err = getOr(ctx, g, KeyUseSystemNode, false); err != nil {
		return runtime.Toolchain{}, err
	}
	if tc.UV.Path, err = getOr(ctx, g, KeyUVPath, ""); err != nil {
		return runtime.Toolchain{}, err
	}
	if tc.UV.System, err = getOr(ctx, g, KeyUseSystemUV, false); err != nil {
		return runtime.Toolchain{}, err
	}

	return tc, nil
}

// SaveTool records where a runtime tool lives, the way the dependency provisioner does.
func SaveTool(ctx context.Context, s Setter, name runtime.ToolName, tool runtime.Tool) error {
	pathKey, systemKey, err := toolKeys(name)
	if err != nil {
		return err
	}

	if err := s.Set(ctx, pathKey, tool.Path); err != nil {
		return err
	}

	return s.Set(ctx, systemKey, tool.System)
}

// SaveServers stores a raw catalog array under the catalog key, string-encoded.
func SaveServers(ctx context.Context, s Setter, inner []byte) error {
	return s.Set(ctx, KeyServers, string(inner))
}

func toolKeys(name runtime.ToolName) (string, string, error) {
	switch name {
	case runtime.Node:
		return KeyNodePath, KeyUseSystemNode, nil
	case runtime.UV:
		return KeyUVPath, KeyUseSystemUV, nil
	default:
		return "", "", fmt.Errorf("%w: unknown tool '%s'", errors.ErrBadRequest, name)
	}
}

// getOr decodes the value under key into T, returning fallback when the key is absent or null.
func getOr[T any](ctx context.Context, g Getter, key string, fallback T) (T, error) {
	raw, ok, err := g.Get(ctx, key)
	if err != nil {
		return fallback, err
	}
	if !ok || string(raw) == "null" {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback, fmt.Errorf("%w: store key '%s': %w", errors.ErrMalformed, key, err)
	}

	return v, nil
}
