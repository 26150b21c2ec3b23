package store

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Backend selects the store implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// AllowedBackends returns the supported store backends.
func AllowedBackends() []Backend {
	return []Backend{BackendJSON, BackendSQLite}
}

// ParseBackend converts user input into a Backend.
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return BackendJSON, nil
	}
	if !slices.Contains(AllowedBackends(), b) {
		return "", fmt.Errorf("unknown store backend '%s', must be one of: %s, %s", s, BackendJSON, BackendSQLite)
	}
	return b, nil
}

// DefaultPath returns the default store location for the backend inside dir.
func DefaultPath(b Backend, dir string) string {
	if b == BackendSQLite {
		return filepath.Join(dir, DefaultSQLiteFileName)
	}
	return filepath.Join(dir, DefaultJSONFileName)
}

// Open returns the store for the given backend at path.
func Open(logger hclog.Logger, b Backend, path string) (Store, error) {
	switch b {
	case BackendJSON, "":
		return NewJSONFileStore(logger, path)
	case BackendSQLite:
		return NewSQLiteStore(logger, path)
	default:
		return nil, fmt.Errorf("unknown store backend '%s'", b)
	}
}
