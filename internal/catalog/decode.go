package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/magnetlabs/magnet/internal/errors"
)

//go:embed schema.json
var schemaJSON []byte

// Decode double-decodes a catalog store value: the outer value must be a JSON string,
// whose content must be a JSON array of T.
// The catalog store only holds string-typed values, hence the two steps.
func Decode[T any](raw json.RawMessage) ([]T, error) {
	inner, err := Unwrap(raw)
	if err != nil {
		return nil, err
	}

	return DecodeInner[T](inner)
}

// Unwrap returns the JSON array text held inside a catalog store value.
func Unwrap(raw json.RawMessage) ([]byte, error) {
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, fmt.Errorf("%w: catalog value is not a JSON string: %w", errors.ErrMalformed, err)
	}

	return []byte(inner), nil
}

// DecodeInner decodes the JSON array held inside the catalog store's string value.
func DecodeInner[T any](inner []byte) ([]T, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(inner), []byte("[")) {
		return nil, fmt.Errorf("%w: catalog is not a JSON array", errors.ErrMalformed)
	}

	var out []T
	if err := json.Unmarshal(inner, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode catalog entries: %w", errors.ErrMalformed, err)
	}

	return out, nil
}

// Encode wraps a raw catalog array as the string-typed value stored under the catalog key.
func Encode(inner []byte) (json.RawMessage, error) {
	data, err := json.Marshal(string(inner))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks a raw catalog array against the catalog JSON schema.
func Validate(inner []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(inner),
	)
	if err != nil {
		return fmt.Errorf("%w: catalog could not be validated: %w", errors.ErrMalformed, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return fmt.Errorf("%w: catalog failed schema validation: %s", errors.ErrMalformed, strings.Join(problems, "; "))
	}

	return nil
}
