package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/magnetlabs/magnet/internal/cmd/output"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

// OutputFormats is a collection of OutputFormat with display helpers.
type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// Nesting widths used by structured output.
const (
	jsonIndent = 2
	yamlIndent = 2
)

// AllowedOutputFormats returns the supported formats in lexicographical order.
func AllowedOutputFormats() OutputFormats {
	formats := []OutputFormat{
		FormatJSON,
		FormatText,
		FormatYAML,
	}

	slices.Sort(formats)

	return formats
}

// String converts the formats to a comma separated string.
func (f *OutputFormats) String() string {
	out := make([]string, len(*f))
	for i := range *f {
		out[i] = (*f)[i].String()
	}
	return strings.Join(out, ", ")
}

// String implements fmt.Stringer, and is required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set is used by Cobra to set the format value from a string.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()

	if !slices.Contains(allowed, OutputFormat(v)) {
		return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
	}

	*f = OutputFormat(v)
	return nil
}

// Type is used by Cobra to get the 'type' of a format for display purposes.
func (f *OutputFormat) Type() string {
	return "format"
}

// NewOutputHandler returns the handler rendering T in the given format.
// The printer is only used for text output.
func NewOutputHandler[T any](format OutputFormat, w io.Writer, p output.Printer[T]) (output.Handler[T], error) {
	switch format {
	case FormatJSON:
		return output.NewJSONHandler[T](w, jsonIndent), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, yamlIndent), nil
	case FormatText, "":
		if p == nil {
			return nil, fmt.Errorf("text output requires a printer")
		}
		return output.NewTextHandler[T](w, p), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
}
