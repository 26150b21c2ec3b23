package servers

import (
	"fmt"
	"strings"
)

// DefaultCreator is the provenance tag written to records this tool installs.
const DefaultCreator = "Magnet"

// Options contains optional configuration for the Manager.
// NewOptions should be used to create instances of Options.
type Options struct {
	// SchemaValidation validates the catalog against its JSON schema before decoding it.
	SchemaValidation bool

	// Creator is the provenance tag written to installed records.
	Creator string
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		SchemaValidation: true,
		Creator:          DefaultCreator,
	}

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

// WithSchemaValidation enables or disables catalog schema validation.
func WithSchemaValidation(enabled bool) Option {
	return func(o *Options) error {
		o.SchemaValidation = enabled
		return nil
	}
}

// WithCreator configures the provenance tag written to installed records.
func WithCreator(creator string) Option {
	return func(o *Options) error {
		creator = strings.TrimSpace(creator)
		if creator == "" {
			return fmt.Errorf("creator cannot be empty")
		}
		o.Creator = creator
		return nil
	}
}
