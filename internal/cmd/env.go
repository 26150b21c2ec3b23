package cmd

import (
	"fmt"
	"strings"
)

// ParseEnvPairs converts KEY=VALUE pairs into a map.
// A nil slice yields a nil map so callers can tell "not given" apart from "given, but empty".
// Later pairs overwrite earlier ones with the same key.
func ParseEnvPairs(pairs []string) (map[string]string, error) {
	if pairs == nil {
		return nil, nil
	}

	env := make(map[string]string, len(pairs))
	for _, kvp := range pairs {
		key, value, ok := strings.Cut(kvp, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid environment variable format: '%s', expected KEY=VALUE", kvp)
		}
		env[key] = value
	}

	return env, nil
}
