package config

import (
	"errors"
	"fmt"

	magneterrors "github.com/magnetlabs/magnet/internal/errors"
)

var (
	// ErrInvalidValue is returned for settings that decode but can't be used.
	// It wraps errors.ErrBadRequest so callers can classify it as caller input.
	ErrInvalidValue = fmt.Errorf("%w: settings value invalid", magneterrors.ErrBadRequest)

	ErrConfigLoadFailed = errors.New("failed to load settings")
)

// NewErrInvalidValue returns an error for an invalid settings value.
func NewErrInvalidValue(key string, value string) error {
	return fmt.Errorf("%w: '%s' (value: '%s')", ErrInvalidValue, key, value)
}
