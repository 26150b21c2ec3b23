package servers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/store"
)

// Dependencies contains required dependencies for the Manager.
type Dependencies struct {
	// Store holds the catalog and the runtime tool locations.
	Store store.Getter

	// ConfigPath is the location of the client config file.
	ConfigPath string

	// Launcher builds launch commands for privately provisioned runtime tools.
	Launcher launcher.Launcher
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if d.Store == nil || reflect.ValueOf(d.Store).IsNil() {
		return fmt.Errorf("store cannot be nil")
	}

	if strings.TrimSpace(d.ConfigPath) == "" {
		return fmt.Errorf("client config path cannot be empty")
	}

	if d.Launcher == nil || reflect.ValueOf(d.Launcher).IsNil() {
		return fmt.Errorf("launcher cannot be nil")
	}

	return nil
}
