// Package options holds the collaborators that commands can be constructed with,
// so tests can substitute them.
package options

import (
	"fmt"
	"reflect"

	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/launcher"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	SettingsLoader      config.Loader
	SettingsInitializer config.Initializer
	Launcher            launcher.Launcher
}

func defaultOptions() CmdOptions {
	loader := &config.DefaultLoader{}
	return CmdOptions{
		SettingsLoader:      loader,
		SettingsInitializer: loader,
		Launcher:            launcher.Default(),
	}
}

// NewOptions applies opts on top of the defaults, skipping nil options.
func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithSettingsLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil || reflect.ValueOf(l).IsNil() {
			return fmt.Errorf("settings loader cannot be nil")
		}
		o.SettingsLoader = l
		return nil
	}
}

func WithSettingsInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if i == nil || reflect.ValueOf(i).IsNil() {
			return fmt.Errorf("settings initializer cannot be nil")
		}
		o.SettingsInitializer = i
		return nil
	}
}

// WithLauncher overrides the platform launcher, e.g. to derive Windows records on another OS.
func WithLauncher(l launcher.Launcher) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil || reflect.ValueOf(l).IsNil() {
			return fmt.Errorf("launcher cannot be nil")
		}
		o.Launcher = l
		return nil
	}
}
