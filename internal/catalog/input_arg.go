package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/magnetlabs/magnet/internal/errors"
)

// ArgClass describes what kind of value an input argument expects, which drives how a client prompts for it.
type ArgClass string

const (
	// ArgClassText is free-form text, and the default when a catalog entry doesn't specify a class.
	ArgClassText ArgClass = "Text"

	// ArgClassSelect is one of a fixed set of choices.
	ArgClassSelect ArgClass = "Select"

	// ArgClassFilePath is a path to a file on the local machine.
	ArgClassFilePath ArgClass = "FilePath"

	// ArgClassDirectoryPath is a path to a directory on the local machine.
	ArgClassDirectoryPath ArgClass = "DirectoryPath"
)

// Multiplicity describes how many values an input argument accepts.
type Multiplicity string

const (
	// MultiplicitySingle accepts at most one value, and is the default.
	MultiplicitySingle Multiplicity = "Single"

	// MultiplicityMultiple accepts any number of values.
	MultiplicityMultiple Multiplicity = "Multiple"
)

// InputArg is the single optional user-supplied argument a server definition can declare.
type InputArg struct {
	Name         string       `json:"name"         yaml:"name"`
	Description  string       `json:"description"  yaml:"description"`
	Class        ArgClass     `json:"class"        yaml:"class"`
	Multiplicity Multiplicity `json:"multiplicity" yaml:"multiplicity"`
	Value        []string     `json:"value"        yaml:"value"`
}

// AllowedArgClasses returns the recognized argument classes.
func AllowedArgClasses() []ArgClass {
	return []ArgClass{ArgClassText, ArgClassSelect, ArgClassFilePath, ArgClassDirectoryPath}
}

// AllowedMultiplicities returns the recognized multiplicities.
func AllowedMultiplicities() []Multiplicity {
	return []Multiplicity{MultiplicitySingle, MultiplicityMultiple}
}

// MarshalText implements encoding.TextMarshaler, writing the default class when unset.
func (c ArgClass) MarshalText() ([]byte, error) {
	if c == "" {
		return []byte(ArgClassText), nil
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ArgClass) UnmarshalText(text []byte) error {
	v := ArgClass(text)
	if v == "" {
		*c = ArgClassText
		return nil
	}
	if !slices.Contains(AllowedArgClasses(), v) {
		return fmt.Errorf("%w: unknown input argument class '%s'", errors.ErrMalformed, v)
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler, writing the default multiplicity when unset.
func (m Multiplicity) MarshalText() ([]byte, error) {
	if m == "" {
		return []byte(MultiplicitySingle), nil
	}
	return []byte(m), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Multiplicity) UnmarshalText(text []byte) error {
	v := Multiplicity(text)
	if v == "" {
		*m = MultiplicitySingle
		return nil
	}
	if !slices.Contains(AllowedMultiplicities(), v) {
		return fmt.Errorf("%w: unknown input argument multiplicity '%s'", errors.ErrMalformed, v)
	}
	*m = v
	return nil
}

// UnmarshalJSON decodes an input argument, filling in the defaults for missing fields:
// class Text, multiplicity Single and no values.
func (a *InputArg) UnmarshalJSON(data []byte) error {
	type alias InputArg
	out := alias(DefaultInputArg())
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out.Value == nil {
		out.Value = []string{}
	}
	*a = InputArg(out)
	return nil
}

// DefaultInputArg returns the descriptor used when a catalog entry declares no input argument.
func DefaultInputArg() InputArg {
	return InputArg{
		Class:        ArgClassText,
		Multiplicity: MultiplicitySingle,
		Value:        []string{},
	}
}

// MarshalJSON always writes value as an array, never null, so clients can index it directly.
func (a InputArg) MarshalJSON() ([]byte, error) {
	type alias InputArg
	out := alias(a)
	if out.Value == nil {
		out.Value = []string{}
	}
	if out.Class == "" {
		out.Class = ArgClassText
	}
	if out.Multiplicity == "" {
		out.Multiplicity = MultiplicitySingle
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WithValues returns a copy of the descriptor holding the given values.
func (a InputArg) WithValues(values []string) InputArg {
	a.Value = slices.Clone(values)
	if a.Value == nil {
		a.Value = []string{}
	}
	return a
}

// Validate checks that the supplied values are acceptable for this descriptor.
func (a InputArg) Validate(values []string) error {
	if a.Multiplicity != MultiplicityMultiple && len(values) > 1 {
		return fmt.Errorf(
			"%w: input argument '%s' accepts a single value, got %d",
			errors.ErrBadRequest,
			a.Name,
			len(values),
		)
	}
	return nil
}
