package servers

import (
	"fmt"
	"path/filepath"
	"sync"
)

// configLocks holds one lock per client config file, shared by every Manager in the process.
var configLocks sync.Map // map[string]*sync.RWMutex

// lockFor returns the lock guarding the config file at path, keyed by its cleaned absolute form.
func lockFor(path string) (*sync.RWMutex, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve client config path '%s': %w", path, err)
	}
	abs = filepath.Clean(abs)

	mu, _ := configLocks.LoadOrStore(abs, &sync.RWMutex{})
	return mu.(*sync.RWMutex), abs, nil
}
