package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	magneterrors "github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/perms"
)

// DefaultJSONFileName is the file name of the JSON-backed application state store.
const DefaultJSONFileName = "AppState.json"

// JSONFileStore keeps every key in a single JSON object on disk.
// The file is re-read on each Get so that writes from other processes are observed.
// NewJSONFileStore should be used to create instances of JSONFileStore.
type JSONFileStore struct {
	mu     sync.Mutex
	path   string
	logger hclog.Logger
}

// NewJSONFileStore returns a store backed by the JSON file at path.
// The file does not need to exist until the first Set.
func NewJSONFileStore(logger hclog.Logger, path string) (*JSONFileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	return &JSONFileStore{
		path:   path,
		logger: logger.Named("store"),
	}, nil
}

// Get implements Getter.
func (s *JSONFileStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return nil, false, err
	}

	v, ok := values[key]
	return v, ok, nil
}

// Set implements Setter.
func (s *JSONFileStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for store key '%s': %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = data

	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := files.WriteFileAtomic(s.path, out, perms.SecureFile); err != nil {
		return fmt.Errorf("%w: %w", magneterrors.ErrIOFailure, err)
	}

	s.logger.Trace("Store key set", "key", key, "path", s.path)

	return nil
}

// Close implements Store. There is nothing to release for a file-backed store.
func (s *JSONFileStore) Close() error {
	return nil
}

// read loads the store file; a missing or empty file is an empty store.
func (s *JSONFileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: failed to read store '%s': %w", magneterrors.ErrIOFailure, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: failed to decode store '%s': %w", magneterrors.ErrMalformed, s.path, err)
	}

	return values, nil
}
