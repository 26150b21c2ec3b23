// Package filter matches items against key/value filters given on the command line or in a query string.
package filter

import (
	"fmt"
	"slices"
	"strings"
)

// Predicate reports whether item satisfies the filter value given for one key.
type Predicate[T any] func(item T, filterValue string) bool

// StringValueProvider extracts a single string value from an item of type T.
type StringValueProvider[T any] func(T) string

// StringValuesProvider extracts a slice of string values from an item of type T.
type StringValuesProvider[T any] func(T) []string

// Matchers maps a normalized filter key to the predicate applied for it.
type Matchers[T any] map[string]Predicate[T]

// NormalizeString lowercases s and trims surrounding whitespace, so comparisons ignore case and padding.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSlice returns a new slice with every value normalized as by NormalizeString.
func NormalizeSlice(s []string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = NormalizeString(s[i])
	}
	return out
}

// SplitList splits a comma-separated filter value into normalized, non-empty values.
func SplitList(val string) []string {
	parts := NormalizeSlice(strings.Split(val, ","))
	return slices.DeleteFunc(parts, func(s string) bool { return s == "" })
}

// Equals matches when the provided value equals the filter value.
func Equals[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return NormalizeString(provider(item)) == NormalizeString(val)
	}
}

// ContainsAny matches when any of the provided values contains the filter value as a substring.
//
// Example:
//
// predicate := ContainsAny(idProvider, titleProvider)
// result := predicate(server, "file") // true for "filesystem" or "File Search"
func ContainsAny[T any](providers ...StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		q := NormalizeString(val)
		for _, p := range providers {
			if strings.Contains(NormalizeString(p(item)), q) {
				return true
			}
		}
		return false
	}
}

// HasAll matches when the provided values include every comma-separated filter value.
//
// Example:
//
// predicate := HasAll(tagsProvider)
// result := predicate(server, "files,local") // true when tagged both "files" and "local"
func HasAll[T any](provider StringValuesProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		have := NormalizeSlice(provider(item))
		for _, want := range SplitList(val) {
			if !slices.Contains(have, want) {
				return false
			}
		}
		return true
	}
}

// HasAny matches when the provided values include at least one comma-separated filter value.
func HasAny[T any](provider StringValuesProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		have := NormalizeSlice(provider(item))
		for _, want := range SplitList(val) {
			if slices.Contains(have, want) {
				return true
			}
		}
		return false
	}
}

// Match reports whether item satisfies every filter.
// Keys are normalized before lookup, empty keys are ignored, and a key without a matcher is an error.
func Match[T any](item T, filters map[string]string, matchers Matchers[T]) (bool, error) {
	for key, val := range filters {
		k := NormalizeString(key)
		if k == "" {
			continue
		}

		matcher, ok := matchers[k]
		if !ok {
			return false, fmt.Errorf("unsupported filter '%s', must be one of: %s", key, matchers.keys())
		}
		if !matcher(item, val) {
			return false, nil
		}
	}
	return true, nil
}

// Apply returns the items satisfying every filter, keeping their order.
func Apply[T any](items []T, filters map[string]string, matchers Matchers[T]) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := Match(item, filters, matchers)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m Matchers[T]) keys() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
